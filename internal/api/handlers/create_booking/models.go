package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	createBooking "github.com/m04kA/GymClassService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SessionID      string  `json:"sessionId"`
	MemberID       string  `json:"memberId"`
	SubscriptionID *string `json:"subscriptionId,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	BookedBy       *string `json:"bookedBy,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               string  `json:"id"`
	SessionID        string  `json:"sessionId"`
	MemberID         string  `json:"memberId"`
	SubscriptionID   *string `json:"subscriptionId,omitempty"`
	Status           string  `json:"status"`
	WaitlistPosition *int    `json:"waitlistPosition,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	BookedBy         *string `json:"bookedBy,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID uuid.UUID) (*createBooking.Request, error) {
	sessionID, err := uuid.Parse(r.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid sessionId: %w", err)
	}

	memberID, err := uuid.Parse(r.MemberID)
	if err != nil {
		return nil, fmt.Errorf("invalid memberId: %w", err)
	}

	req := &createBooking.Request{
		SessionID: sessionID,
		MemberID:  memberID,
		TenantID:  tenantID,
		Notes:     r.Notes,
	}

	if r.SubscriptionID != nil {
		subscriptionID, err := uuid.Parse(*r.SubscriptionID)
		if err != nil {
			return nil, fmt.Errorf("invalid subscriptionId: %w", err)
		}
		req.SubscriptionID = &subscriptionID
	}

	if r.BookedBy != nil {
		bookedBy, err := uuid.Parse(*r.BookedBy)
		if err != nil {
			return nil, fmt.Errorf("invalid bookedBy: %w", err)
		}
		req.BookedBy = &bookedBy
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:               resp.ID.String(),
		SessionID:        resp.SessionID.String(),
		MemberID:         resp.MemberID.String(),
		Status:           resp.Status,
		WaitlistPosition: resp.WaitlistPosition,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.SubscriptionID != nil {
		s := resp.SubscriptionID.String()
		out.SubscriptionID = &s
	}
	if resp.BookedBy != nil {
		s := resp.BookedBy.String()
		out.BookedBy = &s
	}
	return out
}
