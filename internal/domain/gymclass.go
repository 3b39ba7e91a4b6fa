package domain

import (
	"time"

	"github.com/google/uuid"
)

// GymClassStatus represents the lifecycle status of a gym class definition
type GymClassStatus string

const (
	ClassActive   GymClassStatus = "active"
	ClassInactive GymClassStatus = "inactive"
	ClassArchived GymClassStatus = "archived"
)

// LocalizedText holds bilingual (English/Arabic) display text.
// Rendering and language selection are the notification service's concern
type LocalizedText struct {
	EN string
	AR string
}

// String returns the English text, the fallback language
func (t LocalizedText) String() string {
	return t.EN
}

// GymClass represents a class definition (e.g. "Yoga Basics") — the template
// from which sessions are created. Immutable reference data during booking flow
type GymClass struct {
	ID          uuid.UUID
	Name        LocalizedText
	Description LocalizedText
	LocationID  uuid.UUID

	DurationMinutes int
	MaxCapacity     int

	WaitlistEnabled bool
	MaxWaitlistSize int

	RequiresSubscription bool
	DeductsClassFromPlan bool

	// CancellationDeadlineHours is how many hours before start a cancellation
	// stops being free of charge
	CancellationDeadlineHours int

	AdvanceBookingDays int

	Status GymClassStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if sessions can be created and booked for this class
func (c *GymClass) IsActive() bool {
	return c.Status == ClassActive
}

// IsLateCancellation reports whether cancelling the session now falls past the
// class cancellation deadline. Pure check, callers apply fee policy themselves
func IsLateCancellation(session *Session, gymClass *GymClass, now time.Time) bool {
	start, err := session.StartDateTime()
	if err != nil {
		return false
	}
	deadline := start.Add(-time.Duration(gymClass.CancellationDeadlineHours) * time.Hour)
	return !now.Before(deadline)
}
