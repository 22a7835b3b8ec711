package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alumni-network/internal/application"
	"github.com/oksasatya/alumni-network/internal/domain/entity"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/pkg/response"
)

// DirectoryHandler serves the member directory search API. Approval is
// enforced here as well as at the edge, so a direct API call cannot bypass
// the moderation gate.
type DirectoryHandler struct {
	Directory *application.DirectoryService
	Profiles  middleware.ProfileStateLoader
	Logger    *logrus.Logger
}

func NewDirectoryHandler(directory *application.DirectoryService, profiles middleware.ProfileStateLoader, logger *logrus.Logger) *DirectoryHandler {
	return &DirectoryHandler{Directory: directory, Profiles: profiles, Logger: logger}
}

func (h *DirectoryHandler) approved(c *gin.Context) bool {
	userID := c.GetString(middleware.CtxUserIDKey)
	state, err := h.Profiles.LoadProfileState(userID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", userID).Warn("profile state load failed")
		}
		return false
	}
	return state.Onboarded && state.Status == entity.ModerationApproved
}

// Search GET /api/directory?q=&degree=&branch=&year=&page=
func (h *DirectoryHandler) Search(c *gin.Context) {
	if !h.approved(c) {
		response.Error[any](c, http.StatusForbidden, "directory requires an approved profile", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	q := application.DirectoryQuery{
		Q:      c.Query("q"),
		Degree: c.Query("degree"),
		Branch: c.Query("branch"),
		Year:   c.Query("year"),
		Page:   page,
	}
	res, err := h.Directory.Search(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, application.ErrInvalidYear) {
			response.Error[any](c, http.StatusBadRequest, err.Error(), map[string]string{"year": "must be a number"})
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("directory search failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "directory search failed", nil)
		return
	}
	items := make([]gin.H, 0, len(res.Items))
	for _, p := range res.Items {
		items = append(items, gin.H{
			"user_id":         p.UserID,
			"name":            p.Name,
			"degree":          p.Degree,
			"branch":          p.Branch,
			"graduation_year": p.GraduationYear,
			"company":         p.Company,
			"role":            p.Role,
			"location":        p.Location,
			"link":            p.Link,
			"avatar_url":      p.AvatarURL,
		})
	}
	response.Success(c, http.StatusOK, items, "directory results", map[string]any{
		"total":       res.Total,
		"page":        res.Page,
		"page_size":   res.PageSize,
		"total_pages": res.TotalPages,
	})
}

// Suggest GET /api/directory/suggest?q=&size=
func (h *DirectoryHandler) Suggest(c *gin.Context) {
	if !h.approved(c) {
		response.Error[any](c, http.StatusForbidden, "directory requires an approved profile", nil)
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Success(c, http.StatusOK, []map[string]any{}, "suggestions", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Directory.Suggest(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("directory suggest failed")
		}
		response.Success(c, http.StatusOK, []map[string]any{}, "suggestions", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "suggestions", nil)
}
