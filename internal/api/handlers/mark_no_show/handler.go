package mark_no_show

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/GymClassService/internal/api/handlers"
	"github.com/m04kA/GymClassService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingTenant    = "отсутствует или некорректен заголовок X-Tenant-ID"
	msgBookingNotFound  = "бронирование не найдено"
	msgCannotMarkNoShow = "неявку можно отметить только для подтвержденного бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/no-show - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	tenantID, err := handlers.TenantID(r)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/no-show - Missing tenant header: %v", err)
		handlers.RespondBadRequest(w, msgMissingTenant)
		return
	}

	result, err := h.service.MarkNoShow(r.Context(), bookingID, tenantID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/no-show - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotMarkNoShow):
			h.logger.Warn("POST /bookings/{id}/no-show - Cannot mark no-show: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotMarkNoShow)

		default:
			h.logger.Error("POST /bookings/{id}/no-show - Failed to mark no-show: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/no-show - Booking marked as no-show: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
