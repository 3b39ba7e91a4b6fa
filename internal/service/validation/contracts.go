package validation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExistsActiveForSessionAndMember(ctx context.Context, sessionID, memberID uuid.UUID, statuses []domain.BookingStatus) (bool, error)
	GetActiveWithSessionsForMemberOnDate(ctx context.Context, memberID uuid.UUID, date time.Time) ([]*domain.BookingWithSession, error)
}

// SubscriptionRepository интерфейс репозитория абонементов
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	GetActiveByMemberID(ctx context.Context, memberID uuid.UUID) (*domain.Subscription, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
