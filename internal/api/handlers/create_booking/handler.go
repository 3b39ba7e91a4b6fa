package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/GymClassService/internal/api/handlers"
	createBooking "github.com/m04kA/GymClassService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenant      = "отсутствует или некорректен заголовок X-Tenant-ID"
	msgSessionNotFound    = "занятие не найдено"
	msgGymClassNotFound   = "класс занятия не найден"
	msgMemberNotFound     = "участник не найден"
	msgSessionNotBookable = "занятие недоступно для записи"
	msgDuplicateBooking   = "у участника уже есть активная запись на это занятие"
	msgSessionFull        = "занятие заполнено, лист ожидания недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.TenantID(r)
	if err != nil {
		h.logger.Warn("POST /bookings - Missing tenant header: %v", err)
		handlers.RespondBadRequest(w, msgMissingTenant)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSessionNotFound):
			h.logger.Warn("POST /bookings - Session not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, createBooking.ErrGymClassNotFound):
			h.logger.Warn("POST /bookings - Gym class not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgGymClassNotFound)

		case errors.Is(err, createBooking.ErrMemberNotFound):
			h.logger.Warn("POST /bookings - Member not found: member_id=%s", req.MemberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createBooking.ErrSessionNotBookable):
			h.logger.Warn("POST /bookings - Session not bookable: session_id=%s", req.SessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionNotBookable)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: session_id=%s, member_id=%s", req.SessionID, req.MemberID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrSessionFull):
			h.logger.Warn("POST /bookings - Session full: session_id=%s", req.SessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFull)

		case errors.Is(err, createBooking.ErrValidationFailed):
			h.logger.Warn("POST /bookings - Validation failed: member_id=%s, error=%v", req.MemberID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: session_id=%s, member_id=%s, error=%v",
				req.SessionID, req.MemberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, status=%s", result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
