package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/alumni-network/internal/domain/entity"
	"github.com/oksasatya/alumni-network/internal/domain/repository"
	"github.com/oksasatya/alumni-network/internal/infrastructure/postgres"
)

type fakeProfileRepo struct {
	byUser map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUser: map[string]*entity.Profile{}}
}

func (r *fakeProfileRepo) GetByUserID(userID string) (*entity.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Upsert(p *entity.Profile) error {
	now := time.Now()
	if existing, ok := r.byUser[p.UserID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	cp := *p
	r.byUser[p.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) Directory(f repository.DirectoryFilter) ([]*entity.Profile, int, error) {
	return nil, 0, nil
}

func newProfileService(repo repository.ProfileRepository, reset bool) *ProfileService {
	return &ProfileService{Profiles: repo, ModerationResetOnResubmit: reset}
}

func TestSubmitOnboardingFirstSubmission(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newProfileService(repo, true)

	p, err := svc.SubmitOnboarding(context.Background(), "u1", OnboardingInput{
		Name:           "  Jane Doe  ",
		Degree:         "B.Tech",
		Branch:         "CSE",
		GraduationYear: 2019,
		Company:        "Acme",
		Role:           "Engineer",
		Location:       "Pune",
	})
	if err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	if !p.Onboarded {
		t.Fatal("profile not marked onboarded")
	}
	if p.ModerationStatus != entity.ModerationPending {
		t.Fatalf("status = %q, want pending", p.ModerationStatus)
	}
	if p.Name != "Jane Doe" {
		t.Fatalf("name not trimmed: %q", p.Name)
	}
}

func TestSubmitOnboardingResubmitResets(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.byUser["u1"] = &entity.Profile{
		UserID: "u1", Name: "Jane", Onboarded: true,
		ModerationStatus: entity.ModerationApproved,
	}
	svc := newProfileService(repo, true)

	p, err := svc.SubmitOnboarding(context.Background(), "u1", OnboardingInput{Name: "Jane", GraduationYear: 2019})
	if err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	if p.ModerationStatus != entity.ModerationPending {
		t.Fatalf("status = %q, edit of approved profile should go back to review", p.ModerationStatus)
	}
}

func TestSubmitOnboardingResubmitKeepsApprovalWhenConfigured(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.byUser["u1"] = &entity.Profile{
		UserID: "u1", Name: "Jane", Onboarded: true,
		ModerationStatus: entity.ModerationApproved,
	}
	svc := newProfileService(repo, false)

	p, err := svc.SubmitOnboarding(context.Background(), "u1", OnboardingInput{Name: "Jane", GraduationYear: 2019})
	if err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	if p.ModerationStatus != entity.ModerationApproved {
		t.Fatalf("status = %q, want approval kept", p.ModerationStatus)
	}
}

func TestSubmitOnboardingRejectedAlwaysReturnsToPending(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.byUser["u1"] = &entity.Profile{
		UserID: "u1", Name: "Jane", Onboarded: true,
		ModerationStatus: entity.ModerationRejected,
		ModerationReason: "incomplete details",
	}
	// even with reset disabled, a rejected profile must be reviewable again
	svc := newProfileService(repo, false)

	p, err := svc.SubmitOnboarding(context.Background(), "u1", OnboardingInput{Name: "Jane", GraduationYear: 2019})
	if err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	if p.ModerationStatus != entity.ModerationPending {
		t.Fatalf("status = %q, want pending", p.ModerationStatus)
	}
	if p.ModerationReason != "" {
		t.Fatalf("stale rejection reason kept: %q", p.ModerationReason)
	}
}

func TestSubmitOnboardingKeepsExistingAvatar(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.byUser["u1"] = &entity.Profile{
		UserID: "u1", Name: "Jane", Onboarded: true,
		AvatarURL:        "https://storage.example/avatars/u1/a.png",
		ModerationStatus: entity.ModerationPending,
	}
	svc := newProfileService(repo, true)

	p, err := svc.SubmitOnboarding(context.Background(), "u1", OnboardingInput{Name: "Jane", GraduationYear: 2019})
	if err != nil {
		t.Fatalf("SubmitOnboarding: %v", err)
	}
	if p.AvatarURL != "https://storage.example/avatars/u1/a.png" {
		t.Fatalf("avatar dropped on resubmit: %q", p.AvatarURL)
	}
}

func TestLoadProfileState(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := newProfileService(repo, true)

	// missing profile reads as "not onboarded", not as an error
	state, err := svc.LoadProfileState("nobody")
	if err != nil {
		t.Fatalf("LoadProfileState: %v", err)
	}
	if state.Onboarded {
		t.Fatal("missing profile reported as onboarded")
	}

	repo.byUser["u1"] = &entity.Profile{UserID: "u1", Onboarded: true, ModerationStatus: entity.ModerationApproved}
	state, err = svc.LoadProfileState("u1")
	if err != nil {
		t.Fatalf("LoadProfileState: %v", err)
	}
	if !state.Onboarded || state.Status != entity.ModerationApproved {
		t.Fatalf("state = %+v", state)
	}
}

func TestValidateAvatar(t *testing.T) {
	if err := ValidateAvatar("image/png", 1<<20); err != nil {
		t.Fatalf("1 MiB png rejected: %v", err)
	}
	if err := ValidateAvatar("image/jpeg", MaxAvatarBytes); err != nil {
		t.Fatalf("exact-limit upload rejected: %v", err)
	}
	if err := ValidateAvatar("image/png", 6<<20); !errors.Is(err, ErrAvatarTooLarge) {
		t.Fatalf("6 MiB upload: err = %v, want ErrAvatarTooLarge", err)
	}
	if err := ValidateAvatar("application/pdf", 1<<20); !errors.Is(err, ErrAvatarNotImage) {
		t.Fatalf("pdf upload: err = %v, want ErrAvatarNotImage", err)
	}
	// size is checked first so an oversized non-image reports the size problem
	if err := ValidateAvatar("text/plain", MaxAvatarBytes+1); !errors.Is(err, ErrAvatarTooLarge) {
		t.Fatalf("oversized text: err = %v", err)
	}
}
