package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/alumni-network/internal/application"
	"github.com/oksasatya/alumni-network/internal/domain/entity"
	"github.com/oksasatya/alumni-network/internal/domain/repository"
	"github.com/oksasatya/alumni-network/internal/infrastructure/postgres"
	"github.com/oksasatya/alumni-network/internal/interface/middleware"
	"github.com/oksasatya/alumni-network/pkg/validation"
)

type stubProfileRepo struct {
	byUser map[string]*entity.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUser: map[string]*entity.Profile{}}
}

func (r *stubProfileRepo) GetByUserID(userID string) (*entity.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProfileRepo) Upsert(p *entity.Profile) error {
	cp := *p
	r.byUser[p.UserID] = &cp
	return nil
}

func (r *stubProfileRepo) Directory(_ repository.DirectoryFilter) ([]*entity.Profile, int, error) {
	return nil, 0, nil
}

func newOnboardingRouter(repo *stubProfileRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()
	svc := &application.ProfileService{Profiles: repo, ModerationResetOnResubmit: true}
	h := NewProfileHandler(svc, nil)
	r := gin.New()
	r.POST("/api/onboarding", func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, "u1") }, h.SubmitOnboarding)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOnboardingAcceptsOmittedOptionalFields(t *testing.T) {
	repo := newStubProfileRepo()
	r := newOnboardingRouter(repo)

	// Phone, company, role, and location are optional free text.
	w := postJSON(t, r, "/api/onboarding", map[string]any{
		"name":              "Jane Doe",
		"degree":            "B.Tech",
		"branch":            "CSE",
		"graduation_year":   2023,
		"consent_directory": true,
		"consent_terms":     true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	p, err := repo.GetByUserID("u1")
	if err != nil {
		t.Fatalf("profile not stored: %v", err)
	}
	if !p.Onboarded || p.ModerationStatus != entity.ModerationPending {
		t.Fatalf("profile = %+v", p)
	}
	if p.Phone != "" || p.Company != "" || p.Role != "" || p.Location != "" {
		t.Fatalf("optional fields unexpectedly populated: %+v", p)
	}
}

func TestOnboardingStillRequiresCoreFields(t *testing.T) {
	repo := newStubProfileRepo()
	r := newOnboardingRouter(repo)

	w := postJSON(t, r, "/api/onboarding", map[string]any{
		"degree":            "B.Tech",
		"branch":            "CSE",
		"graduation_year":   2023,
		"consent_directory": true,
		"consent_terms":     true,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if _, err := repo.GetByUserID("u1"); !errors.Is(err, postgres.ErrNotFound) {
		t.Fatal("profile written despite invalid payload")
	}
}
