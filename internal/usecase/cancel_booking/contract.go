package cancel_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
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

// SubscriptionRepository интерфейс репозитория абонементов
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	UpdateClassesRemaining(ctx context.Context, sub *domain.Subscription) error
}

// MemberRepository интерфейс репозитория участников
type MemberRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Member, error)
}

// WaitlistService интерфейс сервиса листа ожидания
type WaitlistService interface {
	PromoteFromWaitlist(ctx context.Context, sessionID uuid.UUID, session *domain.Session) (*domain.Booking, error)
	Reorder(ctx context.Context, sessionID uuid.UUID) error
}

// PermissionsClient интерфейс клиента сервиса прав доступа
type PermissionsClient interface {
	HasPermission(ctx context.Context, userID uuid.UUID, permission string) (bool, error)
}

// NotificationClient интерфейс клиента сервиса уведомлений
type NotificationClient interface {
	SendBookingCancellation(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass) error
	SendWaitlistPromotion(ctx context.Context, member *domain.Member, session *domain.Session, gymClass *domain.GymClass) error
}

// WebhookPublisher интерфейс публикатора событий бронирований
type WebhookPublisher interface {
	PublishBookingCancelled(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error
	PublishBookingConfirmed(ctx context.Context, tenantID uuid.UUID, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
