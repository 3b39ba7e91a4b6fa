package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Booking, error)
	GetBySessionAndStatus(ctx context.Context, sessionID uuid.UUID, status domain.BookingStatus) ([]*domain.Booking, error)
	GetWaitlistedBySessionOrderedByPosition(ctx context.Context, sessionID uuid.UUID) ([]*domain.Booking, error)
	CountBySessionAndStatus(ctx context.Context, sessionID uuid.UUID, status domain.BookingStatus) (int64, error)
	ExistsActiveForSessionAndMember(ctx context.Context, sessionID, memberID uuid.UUID, statuses []domain.BookingStatus) (bool, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WebhookPublisher интерфейс публикатора событий бронирований
type WebhookPublisher interface {
	PublishBookingNoShow(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
