package create_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
	"github.com/m04kA/GymClassService/internal/service/validation"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExistsActiveForSessionAndMember(ctx context.Context, sessionID, memberID uuid.UUID, statuses []domain.BookingStatus) (bool, error)
}

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	UpdateCounters(ctx context.Context, session *domain.Session) error
}

// GymClassRepository интерфейс репозитория классов занятий
type GymClassRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GymClass, error)
}

// MemberRepository интерфейс репозитория участников
type MemberRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
}

// ValidationService интерфейс сервиса проверки допуска к записи
type ValidationService interface {
	ValidateEligibility(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass, subscriptionID *uuid.UUID) (*validation.Result, error)
}

// NotificationClient интерфейс клиента сервиса уведомлений
type NotificationClient interface {
	SendBookingConfirmation(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass) error
	SendWaitlistAdded(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass, position int) error
}

// WebhookPublisher интерфейс публикатора событий бронирований
type WebhookPublisher interface {
	PublishBookingCreated(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error
	PublishBookingConfirmed(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
