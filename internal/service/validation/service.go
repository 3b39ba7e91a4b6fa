package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
	subscriptionRepo "github.com/m04kA/GymClassService/internal/infra/storage/subscription"
)

// Result результат проверки допуска участника к записи.
// Деловой отказ (нет абонемента, пересечение расписания) не ошибка:
// CanBook=false и человекочитаемая причина в Reason
type Result struct {
	CanBook      bool
	Reason       string
	Subscription *domain.Subscription
}

// Service сервис проверки допуска к бронированию
type Service struct {
	bookingRepo      BookingRepository
	subscriptionRepo SubscriptionRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса валидации
func NewService(
	bookingRepo BookingRepository,
	subscriptionRepo SubscriptionRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// ValidateEligibility проверяет, может ли участник записаться на занятие.
// Порядок проверок: пересечение расписания, затем абонемент.
// Первая непройденная проверка определяет Reason
func (s *Service) ValidateEligibility(
	ctx context.Context,
	member *domain.Member,
	session *domain.Session,
	gymClass *domain.GymClass,
	subscriptionID *uuid.UUID,
) (*Result, error) {
	s.logger.Info("ValidateEligibility: member=%s session=%s", member.ID, session.ID)

	overlapReason, err := s.findOverlapReason(ctx, member.ID, session)
	if err != nil {
		return nil, err
	}
	if overlapReason != "" {
		s.logger.Warn("ValidateEligibility: member=%s rejected: %s", member.ID, overlapReason)
		return &Result{CanBook: false, Reason: overlapReason}, nil
	}

	if !gymClass.RequiresSubscription {
		return &Result{CanBook: true}, nil
	}

	sub, err := s.ValidateSubscriptionForBooking(ctx, subscriptionID, member, gymClass)
	if err != nil {
		reason, ok := subscriptionRejectionReason(err)
		if !ok {
			return nil, err
		}
		s.logger.Warn("ValidateEligibility: member=%s rejected: %s", member.ID, reason)
		return &Result{CanBook: false, Reason: reason}, nil
	}

	return &Result{CanBook: true, Subscription: sub}, nil
}

// ValidateSubscriptionForBooking находит и проверяет абонемент для записи.
// При явном subscriptionID проверяет принадлежность и статус,
// иначе берет действующий абонемент участника
func (s *Service) ValidateSubscriptionForBooking(
	ctx context.Context,
	subscriptionID *uuid.UUID,
	member *domain.Member,
	gymClass *domain.GymClass,
) (*domain.Subscription, error) {
	var sub *domain.Subscription

	if subscriptionID != nil {
		found, err := s.subscriptionRepo.GetByID(ctx, *subscriptionID)
		if err != nil {
			if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
				return nil, ErrSubscriptionNotFound
			}
			return nil, fmt.Errorf("%w: ValidateSubscriptionForBooking - repository error: %v", ErrInternal, err)
		}
		if found.MemberID != member.ID {
			return nil, ErrSubscriptionNotOwned
		}
		if !found.IsActive() {
			return nil, ErrSubscriptionNotActive
		}
		sub = found
	} else {
		found, err := s.subscriptionRepo.GetActiveByMemberID(ctx, member.ID)
		if err != nil {
			if errors.Is(err, subscriptionRepo.ErrNoActiveSubscription) {
				return nil, ErrNoActiveSubscription
			}
			return nil, fmt.Errorf("%w: ValidateSubscriptionForBooking - repository error: %v", ErrInternal, err)
		}
		sub = found
	}

	if gymClass.DeductsClassFromPlan && !sub.HasClassesAvailable() {
		return nil, ErrNoClassesRemaining
	}

	return sub, nil
}

// ValidateNoOverlappingBookings проверяет, что у участника нет активного
// бронирования, пересекающегося по времени с указанным занятием
func (s *Service) ValidateNoOverlappingBookings(ctx context.Context, memberID uuid.UUID, session *domain.Session) error {
	reason, err := s.findOverlapReason(ctx, memberID, session)
	if err != nil {
		return err
	}
	if reason != "" {
		return fmt.Errorf("%w: %s", ErrOverlappingBooking, reason)
	}
	return nil
}

func (s *Service) findOverlapReason(ctx context.Context, memberID uuid.UUID, session *domain.Session) (string, error) {
	existing, err := s.bookingRepo.GetActiveWithSessionsForMemberOnDate(ctx, memberID, session.SessionDate)
	if err != nil {
		return "", fmt.Errorf("%w: findOverlapReason - repository error: %v", ErrInternal, err)
	}

	for _, b := range existing {
		if b.Session.ID == session.ID {
			continue
		}
		if session.OverlapsWith(b.Session) {
			return fmt.Sprintf("This booking conflicts with '%s' at %s",
				b.GymClass.Name.String(), b.Session.StartTime), nil
		}
	}

	return "", nil
}

// subscriptionRejectionReason переводит ошибки проверки абонемента
// в человекочитаемую причину отказа
func subscriptionRejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrNoActiveSubscription):
		return "Member does not have an active subscription", true
	case errors.Is(err, ErrSubscriptionNotFound):
		return "Subscription not found", true
	case errors.Is(err, ErrSubscriptionNotOwned):
		return "Subscription does not belong to member", true
	case errors.Is(err, ErrSubscriptionNotActive):
		return "Subscription is not active", true
	case errors.Is(err, ErrNoClassesRemaining):
		return "No classes remaining on subscription", true
	default:
		return "", false
	}
}
