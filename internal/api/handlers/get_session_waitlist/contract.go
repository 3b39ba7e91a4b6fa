package get_session_waitlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/service/bookings/models"
)

type BookingService interface {
	GetWaitlistBySession(ctx context.Context, sessionID uuid.UUID) (*models.WaitlistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
