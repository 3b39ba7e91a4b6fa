package webhook

import (
	"time"

	"github.com/google/uuid"
)

// События жизненного цикла бронирования
const (
	eventBookingCreated   = "booking.created"
	eventBookingConfirmed = "booking.confirmed"
	eventBookingCancelled = "booking.cancelled"
	eventBookingCompleted = "booking.completed"
	eventBookingNoShow    = "booking.no_show"
)

// Event событие для диспетчера вебхуков
type Event struct {
	Type       string    `json:"type"`
	TenantID   uuid.UUID `json:"tenantId"`
	OccurredAt time.Time `json:"occurredAt"`

	Payload BookingPayload `json:"payload"`
}

// BookingPayload снимок состояния бронирования на момент события
type BookingPayload struct {
	BookingID        uuid.UUID  `json:"bookingId"`
	SessionID        uuid.UUID  `json:"sessionId"`
	MemberID         uuid.UUID  `json:"memberId"`
	Status           string     `json:"status"`
	WaitlistPosition *int       `json:"waitlistPosition,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`
	CheckedInAt      *time.Time `json:"checkedInAt,omitempty"`
}
