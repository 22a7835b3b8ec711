package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alumni-network/internal/application"
	"github.com/oksasatya/alumni-network/internal/domain/entity"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/pkg/response"
	"github.com/oksasatya/alumni-network/pkg/validation"
)

// ProfileHandler serves the onboarding submission and avatar upload API.
type ProfileHandler struct {
	Profiles *application.ProfileService
	Logger   *logrus.Logger
}

func NewProfileHandler(profiles *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Logger: logger}
}

type onboardingRequest struct {
	Name             string `json:"name" binding:"required,notblank,max=120"`
	Phone            string `json:"phone" binding:"omitempty,max=32"`
	Degree           string `json:"degree" binding:"required,notblank,max=80"`
	Branch           string `json:"branch" binding:"required,notblank,max=80"`
	GraduationYear   int    `json:"graduation_year" binding:"required,gradyear"`
	Company          string `json:"company" binding:"omitempty,max=120"`
	Role             string `json:"role" binding:"omitempty,max=120"`
	Location         string `json:"location" binding:"omitempty,max=120"`
	Link             string `json:"link" binding:"omitempty,httplink,max=300"`
	AvatarURL        string `json:"avatar_url" binding:"omitempty,httplink,max=500"`
	ConsentDirectory bool   `json:"consent_directory" binding:"eq=true"`
	ConsentTerms     bool   `json:"consent_terms" binding:"eq=true"`
}

func profileJSON(p *entity.Profile) gin.H {
	return gin.H{
		"user_id":           p.UserID,
		"name":              p.Name,
		"phone":             p.Phone,
		"degree":            p.Degree,
		"branch":            p.Branch,
		"graduation_year":   p.GraduationYear,
		"company":           p.Company,
		"role":              p.Role,
		"location":          p.Location,
		"link":              p.Link,
		"avatar_url":        p.AvatarURL,
		"onboarded":         p.Onboarded,
		"moderation_status": p.ModerationStatus,
		"moderation_reason": p.ModerationReason,
		"created_at":        p.CreatedAt,
		"updated_at":        p.UpdatedAt,
	}
}

// Get GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Profiles.GetProfile(userID)
	if err != nil {
		if errors.Is(err, application.ErrProfileNotFound) {
			response.Error[any](c, http.StatusNotFound, "profile not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load profile", nil)
		return
	}
	response.Success(c, http.StatusOK, profileJSON(p), "profile", nil)
}

// SubmitOnboarding POST /api/onboarding
func (h *ProfileHandler) SubmitOnboarding(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	userID := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Profiles.SubmitOnboarding(c.Request.Context(), userID, application.OnboardingInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Degree:         req.Degree,
		Branch:         req.Branch,
		GraduationYear: req.GraduationYear,
		Company:        req.Company,
		Role:           req.Role,
		Location:       req.Location,
		Link:           req.Link,
		AvatarURL:      req.AvatarURL,
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", userID).Error("onboarding submit failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to save profile", nil)
		return
	}
	response.Success(c, http.StatusOK, profileJSON(p), "profile submitted for review", nil)
}

// UploadAvatar POST /api/onboarding/avatar (multipart field "avatar").
// Size and content type come from the part header and are checked before the
// file is opened.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if err := application.ValidateAvatar(contentType, fh.Size); err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to read upload", nil)
		return
	}
	defer func() { _ = f.Close() }()

	userID := c.GetString(middleware.CtxUserIDKey)
	url, err := h.Profiles.UploadAvatar(c.Request.Context(), userID, f, fh.Filename, contentType, fh.Size)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAvatarTooLarge), errors.Is(err, application.ErrAvatarNotImage):
			response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).WithField("user_id", userID).Error("avatar upload failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "failed to upload avatar", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}
