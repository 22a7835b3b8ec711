package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alumni-network/internal/application"
	"github.com/oksasatya/alumni-network/internal/domain/entity"
	"github.com/oksasatya/alumni-network/internal/gate"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/pkg/validation"
)

// PageHandler renders the server-side pages. Every protected page re-runs the
// gate decision on the request snapshot before rendering, so a route wired
// without the edge middleware still cannot leak a gated view.
type PageHandler struct {
	Resolver  middleware.SessionResolver
	Profiles  *application.ProfileService
	Directory *application.DirectoryService
	Logger    *logrus.Logger
	AppName   string
}

func NewPageHandler(resolver middleware.SessionResolver, profiles *application.ProfileService, directory *application.DirectoryService, logger *logrus.Logger, appName string) *PageHandler {
	return &PageHandler{Resolver: resolver, Profiles: profiles, Directory: directory, Logger: logger, AppName: appName}
}

// snapshot returns the gate middleware's session and profile state, resolving
// them directly when the middleware did not run for this route.
func (h *PageHandler) snapshot(c *gin.Context) (gate.Session, gate.ProfileState) {
	sess, okS := middleware.CurrentSession(c)
	prof, okP := middleware.CurrentProfileState(c)
	if okS && okP {
		return sess, prof
	}
	sess, _ = h.Resolver.Resolve(c)
	if sess.Authenticated() {
		p, err := h.Profiles.LoadProfileState(sess.UserID)
		if err == nil {
			prof = p
		} else if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", sess.UserID).Warn("profile state load failed")
		}
	}
	return sess, prof
}

// guard re-evaluates the gate for the current path and redirects when the
// decision is a denial. Returns false when the response is already written.
func (h *PageHandler) guard(c *gin.Context) (gate.Session, gate.ProfileState, bool) {
	sess, prof := h.snapshot(c)
	d := gate.Evaluate(gate.Request{Path: c.Request.URL.Path, RequestURI: c.Request.URL.RequestURI()}, sess, prof)
	if !d.Allow {
		c.Redirect(http.StatusFound, d.RedirectTo)
		c.Abort()
		return sess, prof, false
	}
	return sess, prof, true
}

func (h *PageHandler) base(c *gin.Context, sess gate.Session, prof gate.ProfileState) gin.H {
	return gin.H{
		"AppName":    h.AppName,
		"LoggedIn":   sess.Authenticated(),
		"Onboarded":  prof.Onboarded,
		"Approved":   prof.Status == entity.ModerationApproved,
		"LoginURL":   gate.LoginPath,
		"SignupURL":  gate.SignupPath,
		"HomeURL":    "/",
		"DashURL":    gate.DashboardPath,
		"OnboardURL": gate.OnboardingPath,
		"DirURL":     gate.DirectoryPath,
	}
}

// Home GET /
func (h *PageHandler) Home(c *gin.Context) {
	sess, prof := h.snapshot(c)
	data := h.base(c, sess, prof)
	data["Title"] = "Home"
	c.HTML(http.StatusOK, "home.html", data)
}

// Login GET /auth/login
func (h *PageHandler) Login(c *gin.Context) {
	sess, prof := h.snapshot(c)
	if sess.Authenticated() {
		c.Redirect(http.StatusFound, gate.DashboardPath)
		return
	}
	data := h.base(c, sess, prof)
	data["Title"] = "Sign in"
	data["Redirect"] = gate.SafeReturnPath(c.Query("redirect"))
	data["Error"] = c.Query("error")
	c.HTML(http.StatusOK, "login.html", data)
}

// Signup GET /auth/signup
func (h *PageHandler) Signup(c *gin.Context) {
	sess, prof := h.snapshot(c)
	if sess.Authenticated() {
		c.Redirect(http.StatusFound, gate.DashboardPath)
		return
	}
	data := h.base(c, sess, prof)
	data["Title"] = "Create account"
	c.HTML(http.StatusOK, "signup.html", data)
}

// Dashboard GET /dashboard
func (h *PageHandler) Dashboard(c *gin.Context) {
	sess, prof, ok := h.guard(c)
	if !ok {
		return
	}

	data := h.base(c, sess, prof)
	data["Title"] = "Dashboard"
	data["Status"] = string(prof.Status)

	p, err := h.Profiles.GetProfile(sess.UserID)
	if err != nil && !errors.Is(err, application.ErrProfileNotFound) {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", sess.UserID).Error("dashboard profile load failed")
		}
	}
	if p != nil {
		data["Profile"] = p
		data["Status"] = string(p.ModerationStatus)
		data["Reason"] = p.ModerationReason
	}
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// Onboarding GET /onboarding. An existing profile prefills the form so a
// rejected member can edit and resubmit.
func (h *PageHandler) Onboarding(c *gin.Context) {
	sess, prof, ok := h.guard(c)
	if !ok {
		return
	}

	data := h.base(c, sess, prof)
	data["Title"] = "Complete your profile"
	data["MinYear"] = validation.MinGraduationYear
	data["MaxYear"] = validation.MaxGraduationYear()

	p, err := h.Profiles.GetProfile(sess.UserID)
	if err == nil {
		data["Profile"] = p
		data["Status"] = string(p.ModerationStatus)
		data["Reason"] = p.ModerationReason
	}
	c.HTML(http.StatusOK, "onboarding.html", data)
}

// DirectoryPage GET /directory renders one search page server-side.
func (h *PageHandler) DirectoryPage(c *gin.Context) {
	sess, prof, ok := h.guard(c)
	if !ok {
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

	data := h.base(c, sess, prof)
	data["Title"] = "Member directory"
	data["Q"] = q.Q
	data["Degree"] = q.Degree
	data["Branch"] = q.Branch
	data["Year"] = q.Year

	res, err := h.Directory.Search(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, application.ErrInvalidYear) {
			data["FilterError"] = err.Error()
			c.HTML(http.StatusOK, "directory.html", data)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("directory page search failed")
		}
		data["FilterError"] = "search is temporarily unavailable"
		c.HTML(http.StatusOK, "directory.html", data)
		return
	}

	data["Items"] = res.Items
	data["Total"] = res.Total
	data["Page"] = res.Page
	data["TotalPages"] = res.TotalPages
	if res.Page > 1 {
		data["PrevPage"] = res.Page - 1
	}
	if res.Page < res.TotalPages {
		data["NextPage"] = res.Page + 1
	}
	c.HTML(http.StatusOK, "directory.html", data)
}
