package check_in_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
	bookingRepo "github.com/m04kA/GymClassService/internal/infra/storage/booking"
	sessionRepo "github.com/m04kA/GymClassService/internal/infra/storage/session"
	subscriptionRepo "github.com/m04kA/GymClassService/internal/infra/storage/subscription"
)

// UseCase use case для чек-ина участника на занятие
type UseCase struct {
	bookingRepo      BookingRepository
	sessionRepo      SessionRepository
	gymClassRepo     GymClassRepository
	subscriptionRepo SubscriptionRepository
	webhookPublisher WebhookPublisher
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	gymClassRepo GymClassRepository,
	subscriptionRepo SubscriptionRepository,
	webhookPublisher WebhookPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		sessionRepo:      sessionRepo,
		gymClassRepo:     gymClassRepo,
		subscriptionRepo: subscriptionRepo,
		webhookPublisher: webhookPublisher,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case чек-ина.
// Списывает занятие с абонемента при первом чек-ине, повторное списание
// блокируется флагом classDeducted
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckInBooking: booking=%s", req.BookingID)

	// 1. Валидация входных данных
	if req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.TenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckInBooking: booking=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Получаем занятие и класс
		session, err := uc.sessionRepo.GetByID(txCtx, booking.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		gymClass, err := uc.gymClassRepo.GetByID(txCtx, session.GymClassID)
		if err != nil {
			return fmt.Errorf("%w: failed to get gym class: %v", ErrInternal, err)
		}

		// 2.3. Переводим бронирование в checked_in
		if err := booking.CheckIn(now); err != nil {
			uc.logger.Warn("CheckInBooking: booking=%s in status=%s cannot be checked in", req.BookingID, booking.Status)
			return ErrCannotCheckIn
		}

		// 2.4. Списываем занятие с абонемента, если класс этого требует
		if gymClass.DeductsClassFromPlan && booking.SubscriptionID != nil && !booking.ClassDeducted {
			if err := uc.deductClass(txCtx, booking); err != nil {
				return err
			}
		}

		// 2.5. Фиксируем посещение в счетчиках занятия
		session.RecordCheckIn()
		if err := uc.sessionRepo.UpdateCounters(txCtx, session); err != nil {
			return fmt.Errorf("%w: failed to update session counters: %v", ErrInternal, err)
		}

		// 2.6. Сохраняем бронирование
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckInBooking: member=%s checked in for session=%s", result.MemberID, result.SessionID)

	// 3. Вебхук после коммита, сбой не влияет на результат
	if err := uc.webhookPublisher.PublishBookingCompleted(ctx, req.TenantID, result); err != nil {
		uc.logger.Error("CheckInBooking: failed to publish booking.completed webhook for booking=%s: %v", result.ID, err)
	}

	return &Response{
		ID:             result.ID,
		SessionID:      result.SessionID,
		MemberID:       result.MemberID,
		SubscriptionID: result.SubscriptionID,
		Status:         string(result.Status),
		ClassDeducted:  result.ClassDeducted,
		CheckedInAt:    result.CheckedInAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// deductClass списывает одно занятие с абонемента.
// Исчерпанный баланс не блокирует чек-ин: участник уже записан,
// недостача логируется
func (uc *UseCase) deductClass(ctx context.Context, booking *domain.Booking) error {
	sub, err := uc.subscriptionRepo.GetByID(ctx, *booking.SubscriptionID)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			uc.logger.Warn("CheckInBooking: subscription=%s not found, skipping deduction for booking=%s",
				*booking.SubscriptionID, booking.ID)
			return nil
		}
		return fmt.Errorf("%w: failed to get subscription: %v", ErrInternal, err)
	}

	if !sub.IsActive() || !sub.HasClassesAvailable() {
		uc.logger.Warn("CheckInBooking: no classes available on subscription=%s, allowing check-in for booking=%s",
			sub.ID, booking.ID)
		return nil
	}

	if err := sub.UseClass(); err != nil {
		return fmt.Errorf("%w: failed to use class: %v", ErrInternal, err)
	}
	if err := uc.subscriptionRepo.UpdateClassesRemaining(ctx, sub); err != nil {
		return fmt.Errorf("%w: failed to persist class deduction: %v", ErrInternal, err)
	}
	booking.MarkClassDeducted()

	uc.logger.Info("CheckInBooking: class deducted from subscription=%s for booking=%s", sub.ID, booking.ID)
	return nil
}
