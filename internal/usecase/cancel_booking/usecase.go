package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GymClassService/internal/domain"
	bookingRepo "github.com/m04kA/GymClassService/internal/infra/storage/booking"
	memberRepo "github.com/m04kA/GymClassService/internal/infra/storage/member"
	sessionRepo "github.com/m04kA/GymClassService/internal/infra/storage/session"
	"github.com/m04kA/GymClassService/internal/integrations/permissions"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	sessionRepo        SessionRepository
	gymClassRepo       GymClassRepository
	subscriptionRepo   SubscriptionRepository
	memberRepo         MemberRepository
	waitlistService    WaitlistService
	permissionsClient  PermissionsClient
	notificationClient NotificationClient
	webhookPublisher   WebhookPublisher
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	gymClassRepo GymClassRepository,
	subscriptionRepo SubscriptionRepository,
	memberRepo MemberRepository,
	waitlistService WaitlistService,
	permissionsClient PermissionsClient,
	notificationClient NotificationClient,
	webhookPublisher WebhookPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		sessionRepo:        sessionRepo,
		gymClassRepo:       gymClassRepo,
		subscriptionRepo:   subscriptionRepo,
		memberRepo:         memberRepo,
		waitlistService:    waitlistService,
		permissionsClient:  permissionsClient,
		notificationClient: notificationClient,
		webhookPublisher:   webhookPublisher,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Для подтвержденного бронирования освобождает место, возвращает списанное
// занятие и продвигает первого из листа ожидания. Для ожидающего закрывает
// дыру в позициях
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%s", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование для проверки прав доступа
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Проверяем права: только владелец или персонал с правом
	// отмены чужих бронирований
	if err := uc.authorize(ctx, req, booking); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		session  *domain.Session
		gymClass *domain.GymClass
		promoted *domain.Booking
		refunded bool
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		promoted = nil
		refunded = false

		// 4.1. Перечитываем бронирование с блокировкой (FOR UPDATE)
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		wasConfirmed := booking.IsConfirmed()
		wasWaitlisted := booking.IsWaitlisted()

		// 4.2. Переводим бронирование в cancelled
		if err := booking.Cancel(req.Reason, now); err != nil {
			uc.logger.Warn("CancelBooking: booking=%s in status=%s cannot be cancelled", req.BookingID, booking.Status)
			return ErrCannotCancel
		}
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// 4.3. Получаем занятие с блокировкой
		session, err = uc.sessionRepo.GetByID(txCtx, booking.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		gymClass, err = uc.gymClassRepo.GetByID(txCtx, session.GymClassID)
		if err != nil {
			return fmt.Errorf("%w: failed to get gym class: %v", ErrInternal, err)
		}

		switch {
		case wasConfirmed:
			// 4.4. Освобождаем место и возвращаем списанное занятие
			session.DecrementBookings()
			if err := uc.sessionRepo.UpdateCounters(txCtx, session); err != nil {
				return fmt.Errorf("%w: failed to update session counters: %v", ErrInternal, err)
			}

			if booking.ClassDeducted && booking.SubscriptionID != nil {
				if err := uc.refundClass(txCtx, booking); err != nil {
					return err
				}
				refunded = true
			}

			// 4.5. Продвигаем первого из листа ожидания на освободившееся место
			promoted, err = uc.waitlistService.PromoteFromWaitlist(txCtx, booking.SessionID, session)
			if err != nil {
				return fmt.Errorf("%w: failed to promote from waitlist: %v", ErrInternal, err)
			}
		case wasWaitlisted:
			// 4.6. Убираем из листа ожидания и закрываем дыру в позициях
			session.DecrementWaitlist()
			if err := uc.sessionRepo.UpdateCounters(txCtx, session); err != nil {
				return fmt.Errorf("%w: failed to update session counters: %v", ErrInternal, err)
			}
			if err := uc.waitlistService.Reorder(txCtx, booking.SessionID); err != nil {
				return fmt.Errorf("%w: failed to reorder waitlist: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking=%s cancelled", req.BookingID)

	// 5. Уведомления и вебхуки после коммита, сбой не влияет на результат
	uc.dispatchSideEffects(ctx, req, booking, session, gymClass, promoted)

	return &Response{
		ID:                 booking.ID,
		SessionID:          booking.SessionID,
		MemberID:           booking.MemberID,
		Status:             string(booking.Status),
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		LateCancellation:   domain.IsLateCancellation(session, gymClass, now),
		ClassRefunded:      refunded,
		UpdatedAt:          booking.UpdatedAt,
	}, nil
}

// authorize проверяет право пользователя на отмену бронирования.
// Вызов без requestingUserID считается доверенным внутренним и пропускается
func (uc *UseCase) authorize(ctx context.Context, req *Request, booking *domain.Booking) error {
	if req.RequestingUserID == nil {
		uc.logger.Warn("CancelBooking: booking=%s cancelled via trusted path without requesting user", req.BookingID)
		return nil
	}

	member, err := uc.memberRepo.GetByUserID(ctx, *req.RequestingUserID)
	if err != nil && !errors.Is(err, memberRepo.ErrMemberNotFound) {
		uc.logger.Error("CancelBooking: failed to resolve member for user=%s: %v", *req.RequestingUserID, err)
		return fmt.Errorf("%w: failed to resolve member: %v", ErrInternal, err)
	}

	if member != nil && member.ID == booking.MemberID {
		return nil
	}

	hasPermission, err := uc.permissionsClient.HasPermission(ctx, *req.RequestingUserID, permissions.CancelAnyBooking)
	if err != nil {
		uc.logger.Error("CancelBooking: permission check failed for user=%s: %v", *req.RequestingUserID, err)
		return fmt.Errorf("%w: permission check failed: %v", ErrInternal, err)
	}
	if !hasPermission {
		uc.logger.Warn("CancelBooking: unauthorized attempt: user=%s, booking=%s", *req.RequestingUserID, req.BookingID)
		return ErrAccessDenied
	}

	return nil
}

func (uc *UseCase) refundClass(ctx context.Context, booking *domain.Booking) error {
	sub, err := uc.subscriptionRepo.GetByID(ctx, *booking.SubscriptionID)
	if err != nil {
		return fmt.Errorf("%w: failed to get subscription for refund: %v", ErrInternal, err)
	}

	sub.RefundClass()
	if err := uc.subscriptionRepo.UpdateClassesRemaining(ctx, sub); err != nil {
		return fmt.Errorf("%w: failed to refund class: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: refunded class to subscription=%s for booking=%s", sub.ID, booking.ID)
	return nil
}

func (uc *UseCase) dispatchSideEffects(
	ctx context.Context,
	req *Request,
	booking *domain.Booking,
	session *domain.Session,
	gymClass *domain.GymClass,
	promoted *domain.Booking,
) {
	member, err := uc.memberRepo.GetByID(ctx, booking.MemberID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get member=%s for notification: %v", booking.MemberID, err)
	} else if err := uc.notificationClient.SendBookingCancellation(ctx, member, session, gymClass); err != nil {
		uc.logger.Error("CancelBooking: failed to send cancellation notification for booking=%s: %v", booking.ID, err)
	}

	if err := uc.webhookPublisher.PublishBookingCancelled(ctx, req.TenantID, booking); err != nil {
		uc.logger.Error("CancelBooking: failed to publish booking.cancelled webhook for booking=%s: %v", booking.ID, err)
	}

	if promoted == nil {
		return
	}

	promotedMember, err := uc.memberRepo.GetByID(ctx, promoted.MemberID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get promoted member=%s for notification: %v", promoted.MemberID, err)
	} else if err := uc.notificationClient.SendWaitlistPromotion(ctx, promotedMember, session, gymClass); err != nil {
		uc.logger.Error("CancelBooking: failed to send promotion notification for booking=%s: %v", promoted.ID, err)
	}

	if err := uc.webhookPublisher.PublishBookingConfirmed(ctx, req.TenantID, promoted); err != nil {
		uc.logger.Error("CancelBooking: failed to publish booking.confirmed webhook for booking=%s: %v", promoted.ID, err)
	}
}
