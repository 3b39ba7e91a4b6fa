package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/pkg/types"
)

// SessionStatus represents the status of a class session
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCancelled SessionStatus = "cancelled"
	SessionCompleted SessionStatus = "completed"
)

// Session represents a single scheduled occurrence of a gym class
// at a specific date and time
type Session struct {
	ID         uuid.UUID
	GymClassID uuid.UUID
	LocationID uuid.UUID
	TrainerID  *uuid.UUID

	SessionDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	MaxCapacity     int
	CurrentBookings int
	WaitlistCount   int
	CheckedInCount  int

	Status SessionStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if new bookings can be taken for this session
func (s *Session) IsBookable() bool {
	return s.Status == SessionScheduled
}

// HasAvailableSpots returns true if the session has free capacity
func (s *Session) HasAvailableSpots() bool {
	return s.CurrentBookings < s.MaxCapacity
}

// IsFull returns true if the session is at capacity
func (s *Session) IsFull() bool {
	return s.CurrentBookings >= s.MaxCapacity
}

// CanJoinWaitlist returns true if the waitlist still has room
func (s *Session) CanJoinWaitlist(maxWaitlistSize int) bool {
	return s.WaitlistCount < maxWaitlistSize
}

// IncrementBookings takes one spot. Fails if the session is already at capacity,
// the currentBookings <= maxCapacity invariant must hold at all times
func (s *Session) IncrementBookings() error {
	if s.CurrentBookings >= s.MaxCapacity {
		return fmt.Errorf("%w: session %s is at capacity (%d/%d)",
			ErrCapacityExceeded, s.ID, s.CurrentBookings, s.MaxCapacity)
	}
	s.CurrentBookings++
	return nil
}

// DecrementBookings releases one spot, flooring at zero
func (s *Session) DecrementBookings() {
	if s.CurrentBookings > 0 {
		s.CurrentBookings--
	}
}

// IncrementWaitlist adds one entry to the waitlist counter
func (s *Session) IncrementWaitlist() {
	s.WaitlistCount++
}

// DecrementWaitlist removes one entry from the waitlist counter, flooring at zero
func (s *Session) DecrementWaitlist() {
	if s.WaitlistCount > 0 {
		s.WaitlistCount--
	}
}

// RecordCheckIn counts an attended member
func (s *Session) RecordCheckIn() {
	s.CheckedInCount++
}

// StartDateTime combines the session date and start time
func (s *Session) StartDateTime() (time.Time, error) {
	return s.StartTime.ToTime(s.SessionDate)
}

// OverlapsWith reports whether two sessions intersect in time on the same day.
// Half-open intervals: back-to-back sessions (10:00-11:00 and 11:00-12:00) do not overlap
func (s *Session) OverlapsWith(other *Session) bool {
	if !isSameDay(s.SessionDate, other.SessionDate) {
		return false
	}
	return other.StartTime.IsBefore(s.EndTime) && s.StartTime.IsBefore(other.EndTime)
}

// isSameDay reports whether two dates fall on the same calendar day
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
