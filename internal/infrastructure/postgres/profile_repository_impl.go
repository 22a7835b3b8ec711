package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/alumni-network/internal/domain/entity"
	"github.com/oksasatya/alumni-network/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) GetByUserID(userID string) (*entity.Profile, error) {
	ctx := context.Background()
	p := &entity.Profile{}

	row := r.pool.QueryRow(ctx, `
		SELECT user_id, name, phone, degree, branch, graduation_year,
		       company, role, location, link, avatar_url,
		       onboarded, moderation_status, COALESCE(moderation_reason, ''),
		       created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID)

	if err := row.Scan(&p.UserID, &p.Name, &p.Phone, &p.Degree, &p.Branch, &p.GraduationYear,
		&p.Company, &p.Role, &p.Location, &p.Link, &p.AvatarURL,
		&p.Onboarded, &p.ModerationStatus, &p.ModerationReason,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// Upsert overwrites the profile row for the user; the single writer in the
// system. Moderation status and reason are written as given, so the caller
// decides whether a resubmission resets the review.
func (r *ProfileRepository) Upsert(p *entity.Profile) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, name, phone, degree, branch, graduation_year,
		                      company, role, location, link, avatar_url,
		                      onboarded, moderation_status, moderation_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''))
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			degree = EXCLUDED.degree,
			branch = EXCLUDED.branch,
			graduation_year = EXCLUDED.graduation_year,
			company = EXCLUDED.company,
			role = EXCLUDED.role,
			location = EXCLUDED.location,
			link = EXCLUDED.link,
			avatar_url = EXCLUDED.avatar_url,
			onboarded = TRUE,
			moderation_status = EXCLUDED.moderation_status,
			moderation_reason = EXCLUDED.moderation_reason,
			updated_at = now()
		RETURNING created_at, updated_at
	`, p.UserID, p.Name, p.Phone, p.Degree, p.Branch, p.GraduationYear,
		p.Company, p.Role, p.Location, p.Link, p.AvatarURL,
		p.Onboarded, p.ModerationStatus, p.ModerationReason)

	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) Directory(f repository.DirectoryFilter) ([]*entity.Profile, int, error) {
	ctx := context.Background()
	q, args := buildDirectoryQuery(f)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []*entity.Profile
		total int
	)
	for rows.Next() {
		p := &entity.Profile{Onboarded: true, ModerationStatus: entity.ModerationApproved}
		if err := rows.Scan(&p.UserID, &p.Name, &p.Phone, &p.Degree, &p.Branch, &p.GraduationYear,
			&p.Company, &p.Role, &p.Location, &p.Link, &p.AvatarURL, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
