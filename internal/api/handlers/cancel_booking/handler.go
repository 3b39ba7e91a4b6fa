package cancel_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/GymClassService/internal/api/handlers"
	"github.com/m04kA/GymClassService/internal/api/middleware"
	cancelBooking "github.com/m04kA/GymClassService/internal/usecase/cancel_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingTenant      = "отсутствует или некорректен заголовок X-Tenant-ID"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "можно отменять только свои бронирования"
	msgCannotCancel       = "бронирование не может быть отменено"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID                 string  `json:"id"`
	SessionID          string  `json:"sessionId"`
	MemberID           string  `json:"memberId"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	LateCancellation   bool    `json:"lateCancellation"`
	ClassRefunded      bool    `json:"classRefunded"`
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	tenantID, err := handlers.TenantID(r)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing tenant header: %v", err)
		handlers.RespondBadRequest(w, msgMissingTenant)
		return
	}

	var req CancelBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	useCaseReq := &cancelBooking.Request{
		BookingID: bookingID,
		TenantID:  tenantID,
		Reason:    req.Reason,
	}
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
		useCaseReq.RequestingUserID = &userID
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%s", bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &CancelBookingResponse{
		ID:                 result.ID.String(),
		SessionID:          result.SessionID.String(),
		MemberID:           result.MemberID.String(),
		Status:             result.Status,
		CancellationReason: result.CancellationReason,
		LateCancellation:   result.LateCancellation,
		ClassRefunded:      result.ClassRefunded,
	}
	if result.CancelledAt != nil {
		cancelledAt := result.CancelledAt.Format(time.RFC3339)
		response.CancelledAt = &cancelledAt
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
