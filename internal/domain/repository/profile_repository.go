package repository

import "github.com/oksasatya/alumni-network/internal/domain/entity"

// DirectoryFilter is the filter state of a directory query, already
// normalized (sentinel "any" resolved to empty, year parsed).
type DirectoryFilter struct {
	Query          string // free text across name, company, role, location
	Degree         string // exact match, empty = any
	Branch         string // exact match, empty = any
	GraduationYear int    // 0 = any
	Offset         int
	Limit          int
}

// ProfileRepository defines the interface for profile persistence.
// Upsert is the only writer; repeated submissions overwrite the row.
type ProfileRepository interface {
	GetByUserID(userID string) (*entity.Profile, error)
	Upsert(p *entity.Profile) error
	// Directory returns one page of approved profiles plus the total count
	// for the filter, fetched in the same query round-trip.
	Directory(f DirectoryFilter) ([]*entity.Profile, int, error)
}
