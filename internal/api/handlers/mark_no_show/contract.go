package mark_no_show

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/service/bookings/models"
)

type BookingService interface {
	MarkNoShow(ctx context.Context, id, tenantID uuid.UUID) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
