package domain

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus represents the status of a member record
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
	MemberFrozen   MemberStatus = "frozen"
)

// Member is read-only collaborator data owned by the membership context.
// The booking core uses it to resolve requesting users and to address notifications
type Member struct {
	ID     uuid.UUID
	UserID *uuid.UUID // auth user account, nil for offline-registered members

	FirstName LocalizedText
	LastName  LocalizedText

	Email string
	Phone string

	PreferredLanguage string // "en" or "ar", used by the notification service

	Status MemberStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the member can book classes
func (m *Member) IsActive() bool {
	return m.Status == MemberActive
}
