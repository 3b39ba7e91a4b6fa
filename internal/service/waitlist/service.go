package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
	sessionRepo "github.com/m04kA/GymClassService/internal/infra/storage/session"
)

// Service сервис управления листом ожидания.
// Все операции предполагают вызов внутри транзакции: строки бронирований
// и занятия должны быть заблокированы вызывающей стороной
type Service struct {
	bookingRepo BookingRepository
	sessionRepo SessionRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// PromoteFromWaitlist продвигает первого участника из листа ожидания
// на освободившееся место. Оставшиеся позиции перенумеровываются с 1.
// Возвращает nil, nil при пустом листе ожидания.
// session может быть nil, тогда занятие загружается по sessionID
func (s *Service) PromoteFromWaitlist(ctx context.Context, sessionID uuid.UUID, session *domain.Session) (*domain.Booking, error) {
	waitlisted, err := s.bookingRepo.GetWaitlistedBySessionOrderedByPosition(ctx, sessionID)
	if err != nil {
		s.logger.Error("PromoteFromWaitlist: failed to fetch waitlist for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: PromoteFromWaitlist - repository error: %v", ErrInternal, err)
	}
	if len(waitlisted) == 0 {
		s.logger.Info("PromoteFromWaitlist: waitlist empty for session=%s", sessionID)
		return nil, nil
	}

	if session == nil {
		session, err = s.sessionRepo.GetByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, fmt.Errorf("%w: PromoteFromWaitlist - repository error: %v", ErrInternal, err)
		}
	}

	promoted := waitlisted[0]
	if err := promoted.Confirm(); err != nil {
		return nil, fmt.Errorf("%w: PromoteFromWaitlist - confirm booking %s: %v", ErrInternal, promoted.ID, err)
	}
	if err := s.bookingRepo.Update(ctx, promoted); err != nil {
		return nil, fmt.Errorf("%w: PromoteFromWaitlist - update booking %s: %v", ErrInternal, promoted.ID, err)
	}

	if err := session.IncrementBookings(); err != nil {
		return nil, fmt.Errorf("%w: PromoteFromWaitlist - session %s: %v", ErrInternal, sessionID, err)
	}
	session.DecrementWaitlist()
	if err := s.sessionRepo.UpdateCounters(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: PromoteFromWaitlist - update session %s counters: %v", ErrInternal, sessionID, err)
	}

	if err := s.renumber(ctx, waitlisted[1:]); err != nil {
		return nil, err
	}

	s.logger.Info("PromoteFromWaitlist: promoted booking=%s member=%s session=%s",
		promoted.ID, promoted.MemberID, sessionID)
	return promoted, nil
}

// Reorder перенумеровывает лист ожидания занятия в непрерывную
// последовательность 1..N с сохранением порядка
func (s *Service) Reorder(ctx context.Context, sessionID uuid.UUID) error {
	waitlisted, err := s.bookingRepo.GetWaitlistedBySessionOrderedByPosition(ctx, sessionID)
	if err != nil {
		s.logger.Error("Reorder: failed to fetch waitlist for session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: Reorder - repository error: %v", ErrInternal, err)
	}

	return s.renumber(ctx, waitlisted)
}

func (s *Service) renumber(ctx context.Context, waitlisted []*domain.Booking) error {
	for i, booking := range waitlisted {
		want := i + 1
		if booking.WaitlistPosition != nil && *booking.WaitlistPosition == want {
			continue
		}
		if err := s.bookingRepo.UpdateWaitlistPosition(ctx, booking.ID, want); err != nil {
			return fmt.Errorf("%w: renumber - update booking %s position: %v", ErrInternal, booking.ID, err)
		}
	}
	return nil
}
