package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GymClassService/internal/domain"
	gymclassRepo "github.com/m04kA/GymClassService/internal/infra/storage/gymclass"
	memberRepo "github.com/m04kA/GymClassService/internal/infra/storage/member"
	sessionRepo "github.com/m04kA/GymClassService/internal/infra/storage/session"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	sessionRepo        SessionRepository
	gymClassRepo       GymClassRepository
	memberRepo         MemberRepository
	validationService  ValidationService
	notificationClient NotificationClient
	webhookPublisher   WebhookPublisher
	txManager          TransactionManager
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	gymClassRepo GymClassRepository,
	memberRepo MemberRepository,
	validationService ValidationService,
	notificationClient NotificationClient,
	webhookPublisher WebhookPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		sessionRepo:        sessionRepo,
		gymClassRepo:       gymClassRepo,
		memberRepo:         memberRepo,
		validationService:  validationService,
		notificationClient: notificationClient,
		webhookPublisher:   webhookPublisher,
		txManager:          txManager,
		logger:             logger,
	}
}

// Execute выполняет use case создания бронирования.
// Использует сериализуемую транзакцию, чтобы конкурентные записи на одно
// занятие не превысили вместимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: session=%s, member=%s", req.SessionID, req.MemberID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем участника
	member, err := uc.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrMemberNotFound) {
			uc.logger.Warn("CreateBooking: member=%s not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get member=%s: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	var (
		result   *domain.Booking
		session  *domain.Session
		gymClass *domain.GymClass
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем занятие с блокировкой (FOR UPDATE)
		session, err = uc.sessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("CreateBooking: session=%s not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("CreateBooking: failed to get session=%s: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		// 3.2. Проверяем, что занятие открыто для записи
		if !session.IsBookable() {
			uc.logger.Warn("CreateBooking: session=%s is %s, not bookable", req.SessionID, session.Status)
			return ErrSessionNotBookable
		}

		// 3.3. Проверяем отсутствие активного бронирования участника
		exists, err := uc.bookingRepo.ExistsActiveForSessionAndMember(
			txCtx, req.SessionID, req.MemberID, domain.ActiveBookingStatuses)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check existing booking: %v", err)
			return fmt.Errorf("%w: failed to check existing booking: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateBooking: member=%s already booked session=%s", req.MemberID, req.SessionID)
			return ErrDuplicateBooking
		}

		// 3.4. Получаем класс занятия
		gymClass, err = uc.gymClassRepo.GetByID(txCtx, session.GymClassID)
		if err != nil {
			if errors.Is(err, gymclassRepo.ErrGymClassNotFound) {
				return ErrGymClassNotFound
			}
			uc.logger.Error("CreateBooking: failed to get gym class=%s: %v", session.GymClassID, err)
			return fmt.Errorf("%w: failed to get gym class: %v", ErrInternal, err)
		}

		// 3.5. Проверяем допуск: пересечения расписания и абонемент
		validationResult, err := uc.validationService.ValidateEligibility(
			txCtx, member, session, gymClass, req.SubscriptionID)
		if err != nil {
			uc.logger.Error("CreateBooking: eligibility check failed: %v", err)
			return fmt.Errorf("%w: eligibility check failed: %v", ErrInternal, err)
		}
		if !validationResult.CanBook {
			uc.logger.Warn("CreateBooking: member=%s rejected: %s", req.MemberID, validationResult.Reason)
			return fmt.Errorf("%w: %s", ErrValidationFailed, validationResult.Reason)
		}

		subscriptionID := req.SubscriptionID
		if validationResult.Subscription != nil {
			subscriptionID = &validationResult.Subscription.ID
		}

		// 3.6. Подтверждаем бронирование или ставим в лист ожидания
		var booking *domain.Booking
		switch {
		case session.HasAvailableSpots():
			booking = domain.NewConfirmed(req.SessionID, req.MemberID, subscriptionID, req.BookedBy)
			if err := session.IncrementBookings(); err != nil {
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		case gymClass.WaitlistEnabled && session.CanJoinWaitlist(gymClass.MaxWaitlistSize):
			position := session.WaitlistCount + 1
			booking = domain.NewWaitlisted(req.SessionID, req.MemberID, position, subscriptionID, req.BookedBy)
			session.IncrementWaitlist()
		default:
			uc.logger.Warn("CreateBooking: session=%s full, waitlist unavailable", req.SessionID)
			return ErrSessionFull
		}
		booking.Notes = req.Notes

		if err := uc.sessionRepo.UpdateCounters(txCtx, session); err != nil {
			uc.logger.Error("CreateBooking: failed to update session=%s counters: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to update session counters: %v", ErrInternal, err)
		}

		// 3.7. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking=%s created with status=%s", result.ID, result.Status)

	// 4. Уведомления и вебхуки после коммита, сбой не влияет на результат
	uc.dispatchSideEffects(ctx, req, result, member, session, gymClass)

	return toResponse(result), nil
}

func (uc *UseCase) dispatchSideEffects(
	ctx context.Context,
	req *Request,
	booking *domain.Booking,
	member *domain.Member,
	session *domain.Session,
	gymClass *domain.GymClass,
) {
	if booking.IsConfirmed() {
		if err := uc.notificationClient.SendBookingConfirmation(ctx, member, session, gymClass); err != nil {
			uc.logger.Error("CreateBooking: failed to send confirmation notification for booking=%s: %v", booking.ID, err)
		}
		if err := uc.webhookPublisher.PublishBookingConfirmed(ctx, req.TenantID, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to publish booking.confirmed webhook for booking=%s: %v", booking.ID, err)
		}
		return
	}

	position := 1
	if booking.WaitlistPosition != nil {
		position = *booking.WaitlistPosition
	}
	if err := uc.notificationClient.SendWaitlistAdded(ctx, member, session, gymClass, position); err != nil {
		uc.logger.Error("CreateBooking: failed to send waitlist notification for booking=%s: %v", booking.ID, err)
	}
	if err := uc.webhookPublisher.PublishBookingCreated(ctx, req.TenantID, booking); err != nil {
		uc.logger.Error("CreateBooking: failed to publish booking.created webhook for booking=%s: %v", booking.ID, err)
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		SessionID:        b.SessionID,
		MemberID:         b.MemberID,
		SubscriptionID:   b.SubscriptionID,
		Status:           string(b.Status),
		WaitlistPosition: b.WaitlistPosition,
		Notes:            b.Notes,
		BookedBy:         b.BookedBy,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
