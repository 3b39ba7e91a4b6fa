package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
)

// BookingResponse представление бронирования для API
type BookingResponse struct {
	ID               uuid.UUID  `json:"id"`
	SessionID        uuid.UUID  `json:"sessionId"`
	MemberID         uuid.UUID  `json:"memberId"`
	SubscriptionID   *uuid.UUID `json:"subscriptionId,omitempty"`
	Status           string     `json:"status"`
	WaitlistPosition *int       `json:"waitlistPosition,omitempty"`
	ClassDeducted    bool       `json:"classDeducted"`

	Notes    *string    `json:"notes,omitempty"`
	BookedBy *uuid.UUID `json:"bookedBy,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CheckedInAt        *time.Time `json:"checkedInAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// WaitlistEntry позиция участника в листе ожидания занятия
type WaitlistEntry struct {
	Position  int       `json:"position"`
	BookingID uuid.UUID `json:"bookingId"`
	MemberID  uuid.UUID `json:"memberId"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// WaitlistResponse лист ожидания занятия в порядке позиций
type WaitlistResponse struct {
	SessionID uuid.UUID        `json:"sessionId"`
	Entries   []*WaitlistEntry `json:"entries"`
	Total     int              `json:"total"`
}

// FromDomainBooking конвертирует доменную модель в API представление
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		SessionID:          b.SessionID,
		MemberID:           b.MemberID,
		SubscriptionID:     b.SubscriptionID,
		Status:             string(b.Status),
		WaitlistPosition:   b.WaitlistPosition,
		ClassDeducted:      b.ClassDeducted,
		Notes:              b.Notes,
		BookedBy:           b.BookedBy,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CheckedInAt:        b.CheckedInAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список доменных моделей
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	responses := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: responses,
		Total:    len(responses),
	}
}

// FromDomainWaitlist конвертирует лист ожидания в API представление
func FromDomainWaitlist(sessionID uuid.UUID, bookings []*domain.Booking) *WaitlistResponse {
	entries := make([]*WaitlistEntry, 0, len(bookings))
	for _, b := range bookings {
		position := 0
		if b.WaitlistPosition != nil {
			position = *b.WaitlistPosition
		}
		entries = append(entries, &WaitlistEntry{
			Position:  position,
			BookingID: b.ID,
			MemberID:  b.MemberID,
			JoinedAt:  b.CreatedAt,
		})
	}
	return &WaitlistResponse{
		SessionID: sessionID,
		Entries:   entries,
		Total:     len(entries),
	}
}
