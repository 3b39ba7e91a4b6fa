package check_in_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/GymClassService/internal/api/handlers"
	checkInBooking "github.com/m04kA/GymClassService/internal/usecase/check_in_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingTenant    = "отсутствует или некорректен заголовок X-Tenant-ID"
	msgBookingNotFound  = "бронирование не найдено"
	msgCannotCheckIn    = "чек-ин недоступен для этого бронирования"
)

type Handler struct {
	useCase CheckInBookingUseCase
	logger  Logger
}

func NewHandler(useCase CheckInBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// CheckInResponse HTTP response model
type CheckInResponse struct {
	ID             string  `json:"id"`
	SessionID      string  `json:"sessionId"`
	MemberID       string  `json:"memberId"`
	SubscriptionID *string `json:"subscriptionId,omitempty"`
	Status         string  `json:"status"`
	ClassDeducted  bool    `json:"classDeducted"`
	CheckedInAt    *string `json:"checkedInAt,omitempty"`
}

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	tenantID, err := handlers.TenantID(r)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Missing tenant header: %v", err)
		handlers.RespondBadRequest(w, msgMissingTenant)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkInBooking.Request{
		BookingID: bookingID,
		TenantID:  tenantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkInBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/check-in - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, checkInBooking.ErrCannotCheckIn):
			h.logger.Warn("POST /bookings/{id}/check-in - Cannot check in: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCheckIn)

		case errors.Is(err, checkInBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/check-in - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("POST /bookings/{id}/check-in - Failed to check in: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &CheckInResponse{
		ID:            result.ID.String(),
		SessionID:     result.SessionID.String(),
		MemberID:      result.MemberID.String(),
		Status:        result.Status,
		ClassDeducted: result.ClassDeducted,
	}
	if result.SubscriptionID != nil {
		subscriptionID := result.SubscriptionID.String()
		response.SubscriptionID = &subscriptionID
	}
	if result.CheckedInAt != nil {
		checkedInAt := result.CheckedInAt.Format(time.RFC3339)
		response.CheckedInAt = &checkedInAt
	}

	h.logger.Info("POST /bookings/{id}/check-in - Member checked in: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
