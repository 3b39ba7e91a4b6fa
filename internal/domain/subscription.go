package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus represents the status of a member's subscription
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionFrozen    SubscriptionStatus = "frozen"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is the member's plan, owned by the membership context.
// The booking core only reads it and moves the class credit counter
type Subscription struct {
	ID       uuid.UUID
	MemberID uuid.UUID
	PlanID   uuid.UUID

	StartDate time.Time
	EndDate   time.Time

	Status SubscriptionStatus

	// ClassesRemaining is the class credit balance.
	// nil means the plan is unlimited and is never gated, debited or refunded
	ClassesRemaining *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the subscription can be used for bookings
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionActive
}

// IsExpired returns true if the subscription has expired
func (s *Subscription) IsExpired() bool {
	return s.Status == SubscriptionExpired
}

// IsUnlimited returns true if the plan has no class credit limit
func (s *Subscription) IsUnlimited() bool {
	return s.ClassesRemaining == nil
}

// HasClassesAvailable returns true if at least one class credit is left.
// Unlimited plans always have classes available
func (s *Subscription) HasClassesAvailable() bool {
	return s.ClassesRemaining == nil || *s.ClassesRemaining > 0
}

// UseClass debits one class credit. No-op for unlimited plans
func (s *Subscription) UseClass() error {
	if s.ClassesRemaining == nil {
		return nil
	}
	if *s.ClassesRemaining <= 0 {
		return fmt.Errorf("%w: subscription %s has no classes remaining", ErrNoClassesRemaining, s.ID)
	}
	remaining := *s.ClassesRemaining - 1
	s.ClassesRemaining = &remaining
	return nil
}

// RefundClass credits one class back. No-op for unlimited plans
func (s *Subscription) RefundClass() {
	if s.ClassesRemaining == nil {
		return
	}
	remaining := *s.ClassesRemaining + 1
	s.ClassesRemaining = &remaining
}
