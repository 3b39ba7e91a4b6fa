package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a class booking
type BookingStatus string

const (
	StatusConfirmed  BookingStatus = "confirmed"
	StatusWaitlisted BookingStatus = "waitlisted"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Booking represents a member's claim on a class session,
// either confirmed or waiting for a spot to free up
type Booking struct {
	ID             uuid.UUID
	SessionID      uuid.UUID
	MemberID       uuid.UUID
	SubscriptionID *uuid.UUID
	Status         BookingStatus

	// WaitlistPosition is the 1-based FIFO rank, set only while Status is waitlisted
	WaitlistPosition *int

	// ClassDeducted guards against debiting the subscription twice
	ClassDeducted bool

	Notes    *string
	BookedBy *uuid.UUID // staff member who booked on behalf, nil for self-booking

	CancellationReason *string
	CancelledAt        *time.Time
	CheckedInAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConfirmed creates a confirmed booking for a session with free capacity
func NewConfirmed(sessionID, memberID uuid.UUID, subscriptionID *uuid.UUID, bookedBy *uuid.UUID) *Booking {
	return &Booking{
		ID:             uuid.New(),
		SessionID:      sessionID,
		MemberID:       memberID,
		SubscriptionID: subscriptionID,
		Status:         StatusConfirmed,
		BookedBy:       bookedBy,
	}
}

// NewWaitlisted creates a waitlisted booking at the given 1-based position
func NewWaitlisted(sessionID, memberID uuid.UUID, position int, subscriptionID *uuid.UUID, bookedBy *uuid.UUID) *Booking {
	return &Booking{
		ID:               uuid.New(),
		SessionID:        sessionID,
		MemberID:         memberID,
		SubscriptionID:   subscriptionID,
		Status:           StatusWaitlisted,
		WaitlistPosition: &position,
		BookedBy:         bookedBy,
	}
}

// IsConfirmed returns true if the booking holds a spot in the session
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsWaitlisted returns true if the booking is queued on the waitlist
func (b *Booking) IsWaitlisted() bool {
	return b.Status == StatusWaitlisted
}

// IsActive returns true if the booking still claims a spot or a waitlist position
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusWaitlisted
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed || b.Status == StatusWaitlisted
}

// Confirm promotes a waitlisted booking to confirmed and clears its position
func (b *Booking) Confirm() error {
	if b.Status != StatusWaitlisted {
		return fmt.Errorf("%w: cannot confirm a %s booking", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusConfirmed
	b.WaitlistPosition = nil
	return nil
}

// Cancel marks the booking cancelled and records when and why
func (b *Booking) Cancel(reason *string, now time.Time) error {
	if !b.CanBeCancelled() {
		return fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusCancelled
	b.WaitlistPosition = nil
	b.CancellationReason = reason
	b.CancelledAt = &now
	return nil
}

// CheckIn marks attendance for a confirmed booking
func (b *Booking) CheckIn(now time.Time) error {
	if b.Status != StatusConfirmed {
		return fmt.Errorf("%w: cannot check in a %s booking", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusCheckedIn
	b.CheckedInAt = &now
	return nil
}

// MarkNoShow marks a confirmed booking as missed. Terminal, no refund
func (b *Booking) MarkNoShow() error {
	if b.Status != StatusConfirmed {
		return fmt.Errorf("%w: cannot mark a %s booking as no-show", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusNoShow
	return nil
}

// MarkClassDeducted records that one class was debited from the subscription
func (b *Booking) MarkClassDeducted() {
	b.ClassDeducted = true
}

// SetWaitlistPosition reassigns the 1-based waitlist position during reordering
func (b *Booking) SetWaitlistPosition(position int) error {
	if b.Status != StatusWaitlisted {
		return fmt.Errorf("%w: cannot set waitlist position on a %s booking", ErrInvalidTransition, b.Status)
	}
	if position < 1 {
		return fmt.Errorf("%w: waitlist position must be 1-based, got %d", ErrInvalidTransition, position)
	}
	b.WaitlistPosition = &position
	return nil
}
