package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
	bookingRepo "github.com/m04kA/GymClassService/internal/infra/storage/booking"
	"github.com/m04kA/GymClassService/internal/service/bookings/models"
)

// Service сервис чтения и административных операций над бронированиями
type Service struct {
	bookingRepo      BookingRepository
	webhookPublisher WebhookPublisher
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	webhookPublisher WebhookPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		webhookPublisher: webhookPublisher,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetBySession получает все бронирования занятия
func (s *Service) GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.GetBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("GetBySession: repository error for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: GetBySession - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(bookings), nil
}

// GetWaitlistBySession получает лист ожидания занятия в порядке позиций
func (s *Service) GetWaitlistBySession(ctx context.Context, sessionID uuid.UUID) (*models.WaitlistResponse, error) {
	waitlisted, err := s.bookingRepo.GetWaitlistedBySessionOrderedByPosition(ctx, sessionID)
	if err != nil {
		s.logger.Error("GetWaitlistBySession: repository error for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: GetWaitlistBySession - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWaitlist(sessionID, waitlisted), nil
}

// HasMemberBookedSession проверяет наличие активного бронирования участника
func (s *Service) HasMemberBookedSession(ctx context.Context, sessionID, memberID uuid.UUID) (bool, error) {
	exists, err := s.bookingRepo.ExistsActiveForSessionAndMember(ctx, sessionID, memberID, domain.ActiveBookingStatuses)
	if err != nil {
		s.logger.Error("HasMemberBookedSession: repository error for session=%s member=%s: %v", sessionID, memberID, err)
		return false, fmt.Errorf("%w: HasMemberBookedSession - repository error: %v", ErrInternal, err)
	}
	return exists, nil
}

// GetConfirmedCountForSession считает подтвержденные бронирования занятия
func (s *Service) GetConfirmedCountForSession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	return s.countByStatus(ctx, sessionID, domain.StatusConfirmed)
}

// GetWaitlistCountForSession считает участников в листе ожидания занятия
func (s *Service) GetWaitlistCountForSession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	return s.countByStatus(ctx, sessionID, domain.StatusWaitlisted)
}

// MarkNoShow фиксирует неявку участника на занятие.
// Допускается только для подтвержденных бронирований, списанное занятие
// не возвращается
func (s *Service) MarkNoShow(ctx context.Context, id, tenantID uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "MarkNoShow")
	if err != nil {
		return nil, err
	}

	if err := booking.MarkNoShow(); err != nil {
		s.logger.Warn("MarkNoShow: booking=%s in status=%s cannot be marked: %v", id, booking.Status, err)
		return nil, ErrCannotMarkNoShow
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		s.logger.Error("MarkNoShow: failed to update booking=%s: %v", id, err)
		return nil, fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	if err := s.webhookPublisher.PublishBookingNoShow(ctx, tenantID, booking); err != nil {
		s.logger.Error("MarkNoShow: failed to publish no-show webhook for booking=%s: %v", id, err)
	}

	s.logger.Info("MarkNoShow: booking=%s marked as no-show", id)
	return models.FromDomainBooking(booking), nil
}

// ProcessNoShowsForSession помечает неявкой все подтвержденные бронирования
// завершившегося занятия, по которым не было чек-ина.
// Возвращает количество обработанных бронирований
func (s *Service) ProcessNoShowsForSession(ctx context.Context, sessionID, tenantID uuid.UUID) (int, error) {
	confirmed, err := s.bookingRepo.GetBySessionAndStatus(ctx, sessionID, domain.StatusConfirmed)
	if err != nil {
		s.logger.Error("ProcessNoShowsForSession: repository error for session=%s: %v", sessionID, err)
		return 0, fmt.Errorf("%w: ProcessNoShowsForSession - repository error: %v", ErrInternal, err)
	}

	count := 0
	for _, booking := range confirmed {
		if err := booking.MarkNoShow(); err != nil {
			s.logger.Warn("ProcessNoShowsForSession: skipping booking=%s: %v", booking.ID, err)
			continue
		}
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return count, fmt.Errorf("%w: ProcessNoShowsForSession - update booking %s: %v", ErrInternal, booking.ID, err)
		}
		if err := s.webhookPublisher.PublishBookingNoShow(ctx, tenantID, booking); err != nil {
			s.logger.Error("ProcessNoShowsForSession: failed to publish webhook for booking=%s: %v", booking.ID, err)
		}
		count++
	}

	s.logger.Info("ProcessNoShowsForSession: session=%s processed %d no-shows", sessionID, count)
	return count, nil
}

// Delete удаляет бронирование.
// Удалять можно только отмененные бронирования и неявки
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	booking, err := s.getBooking(ctx, id, "Delete")
	if err != nil {
		return err
	}

	if booking.Status != domain.StatusCancelled && booking.Status != domain.StatusNoShow {
		s.logger.Warn("Delete: booking=%s in status=%s is not deletable", id, booking.Status)
		return ErrNotDeletable
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Delete: failed to delete booking=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking=%s deleted", id)
	return nil
}

func (s *Service) getBooking(ctx context.Context, id uuid.UUID, method string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking=%s not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

func (s *Service) countByStatus(ctx context.Context, sessionID uuid.UUID, status domain.BookingStatus) (int64, error) {
	count, err := s.bookingRepo.CountBySessionAndStatus(ctx, sessionID, status)
	if err != nil {
		s.logger.Error("countByStatus: repository error for session=%s status=%s: %v", sessionID, status, err)
		return 0, fmt.Errorf("%w: countByStatus - repository error: %v", ErrInternal, err)
	}
	return count, nil
}
