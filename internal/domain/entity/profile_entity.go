package entity

import "time"

// ModerationStatus is the admin-controlled review state of a profile.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// Valid reports whether s is one of the known states.
func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

// Profile holds a member's alumni details plus the onboarding and moderation
// flags. One row per user; created by the first onboarding submission and
// overwritten (never appended) on resubmission. Onboarded is never reset.
type Profile struct {
	UserID           string
	Name             string
	Phone            string
	Degree           string
	Branch           string
	GraduationYear   int
	Company          string
	Role             string
	Location         string
	Link             string
	AvatarURL        string
	Onboarded        bool
	ModerationStatus ModerationStatus
	ModerationReason string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
