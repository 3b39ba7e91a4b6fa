package waitlist

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWaitlistedBySessionOrderedByPosition(ctx context.Context, sessionID uuid.UUID) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateWaitlistPosition(ctx context.Context, id uuid.UUID, position int) error
}

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	UpdateCounters(ctx context.Context, session *domain.Session) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
