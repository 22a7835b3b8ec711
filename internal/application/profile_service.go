package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alumni-network/internal/domain/entity"
	repo "github.com/oksasatya/alumni-network/internal/domain/repository"
	"github.com/oksasatya/alumni-network/internal/gate"
	"github.com/oksasatya/alumni-network/internal/infrastructure/postgres"
	"github.com/oksasatya/alumni-network/pkg/helpers"
	"github.com/oksasatya/alumni-network/pkg/mailer"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrAvatarTooLarge  = fmt.Errorf("avatar exceeds %d bytes", MaxAvatarBytes)
	ErrAvatarNotImage  = errors.New("avatar must be an image")
)

// MaxAvatarBytes caps avatar uploads at 5 MiB, checked from the multipart
// header before any storage round-trip.
const MaxAvatarBytes = 5 << 20

// ProfileService owns onboarding submissions, avatar uploads, and the
// search-index fanout.
type ProfileService struct {
	Profiles  repo.ProfileRepository
	Redis     *redis.Client
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
	Pub       *helpers.RabbitPublisher
	Mail      mailer.Sender

	MailEnabled               bool
	ModerationResetOnResubmit bool
}

type OnboardingInput struct {
	Name           string
	Phone          string
	Degree         string
	Branch         string
	GraduationYear int
	Company        string
	Role           string
	Location       string
	Link           string
	AvatarURL      string
}

// SubmitOnboarding upserts the profile. Onboarded becomes true and stays
// true. Moderation status starts at pending; on resubmission it resets to
// pending when configured to (rejected profiles always return to pending so
// the edit path out of rejection works).
func (s *ProfileService) SubmitOnboarding(ctx context.Context, userID string, in OnboardingInput) (*entity.Profile, error) {
	existing, err := s.Profiles.GetByUserID(userID)
	if err != nil && !errors.Is(err, postgres.ErrNotFound) {
		return nil, err
	}

	status := entity.ModerationPending
	reason := ""
	if existing != nil && !s.ModerationResetOnResubmit && existing.ModerationStatus != entity.ModerationRejected {
		status = existing.ModerationStatus
		reason = existing.ModerationReason
	}

	avatar := strings.TrimSpace(in.AvatarURL)
	if avatar == "" && existing != nil {
		avatar = existing.AvatarURL
	}

	p := &entity.Profile{
		UserID:           userID,
		Name:             strings.TrimSpace(in.Name),
		Phone:            strings.TrimSpace(in.Phone),
		Degree:           strings.TrimSpace(in.Degree),
		Branch:           strings.TrimSpace(in.Branch),
		GraduationYear:   in.GraduationYear,
		Company:          strings.TrimSpace(in.Company),
		Role:             strings.TrimSpace(in.Role),
		Location:         strings.TrimSpace(in.Location),
		Link:             strings.TrimSpace(in.Link),
		AvatarURL:        avatar,
		Onboarded:        true,
		ModerationStatus: status,
		ModerationReason: reason,
	}
	if err := s.Profiles.Upsert(p); err != nil {
		return nil, err
	}

	s.refreshSessionMeta(ctx, p)
	_ = s.indexProfile(ctx, p)

	if existing == nil || status == entity.ModerationPending {
		s.enqueueSubmitted(ctx, userID, p)
	}

	return p, nil
}

// GetProfile returns the member's profile for rendering.
func (s *ProfileService) GetProfile(userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// LoadProfileState is the gate's view of the profile. A missing row is not
// an error, it simply reads as "not onboarded".
func (s *ProfileService) LoadProfileState(userID string) (gate.ProfileState, error) {
	p, err := s.Profiles.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return gate.ProfileState{}, nil
		}
		return gate.ProfileState{}, err
	}
	return gate.ProfileState{Onboarded: p.Onboarded, Status: p.ModerationStatus}, nil
}

// ValidateAvatar rejects oversized or non-image uploads before any bytes
// travel to the blob store.
func ValidateAvatar(contentType string, size int64) error {
	if size > MaxAvatarBytes {
		return ErrAvatarTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrAvatarNotImage
	}
	return nil
}

// UploadAvatar streams an already validated image into GCS and, when a
// profile row exists, swaps its avatar reference. A failed upload leaves the
// stored reference untouched.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string, size int64) (string, error) {
	if err := ValidateAvatar(contentType, size); err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("blob storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	p, err := s.Profiles.GetByUserID(userID)
	if err != nil {
		// No profile yet: the onboarding submission will carry the URL.
		if errors.Is(err, postgres.ErrNotFound) {
			return url, nil
		}
		return "", err
	}
	p.AvatarURL = url
	if err := s.Profiles.Upsert(p); err != nil {
		return "", err
	}

	s.refreshSessionMeta(ctx, p)
	_ = s.indexProfile(ctx, p)
	return url, nil
}

// refreshSessionMeta mirrors display fields into the session hash so the
// navigation bar stays current without a profile read.
func (s *ProfileService) refreshSessionMeta(ctx context.Context, p *entity.Profile) {
	if s.Redis == nil {
		return
	}
	key := helpers.SessionKey(p.UserID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"name":       p.Name,
		"avatar_url": p.AvatarURL,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}

func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"user_id":           p.UserID,
		"name":              p.Name,
		"degree":            p.Degree,
		"branch":            p.Branch,
		"graduation_year":   p.GraduationYear,
		"company":           p.Company,
		"role":              p.Role,
		"location":          p.Location,
		"avatar_url":        p.AvatarURL,
		"moderation_status": string(p.ModerationStatus),
		"updated_at":        p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.UserID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.UserID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", p.UserID).Warn("es index response error")
	}
	return nil
}

func (s *ProfileService) enqueueSubmitted(ctx context.Context, userID string, p *entity.Profile) {
	if !s.MailEnabled || s.Redis == nil {
		return
	}
	email, err := s.Redis.HGet(ctx, helpers.SessionKey(userID), "email").Result()
	if err != nil || email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       email,
		Template: mailer.TemplateProfileSubmitted,
		Data:     map[string]any{"Name": p.Name, "Email": email},
	}
	dispatchMail(ctx, s.Pub, s.Mail, s.Logger, job)
}
