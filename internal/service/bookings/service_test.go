package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GymClassService/internal/domain"
	bookingRepo "github.com/m04kA/GymClassService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking

	updated []uuid.UUID
	deleted []uuid.UUID
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	m := make(map[uuid.UUID]*domain.Booking)
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetBySession(_ context.Context, sessionID uuid.UUID) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.SessionID == sessionID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetBySessionAndStatus(_ context.Context, sessionID uuid.UUID, status domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.SessionID == sessionID && b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetWaitlistedBySessionOrderedByPosition(_ context.Context, sessionID uuid.UUID) ([]*domain.Booking, error) {
	return f.GetBySessionAndStatus(context.Background(), sessionID, domain.StatusWaitlisted)
}

func (f *fakeBookingRepo) CountBySessionAndStatus(_ context.Context, sessionID uuid.UUID, status domain.BookingStatus) (int64, error) {
	var count int64
	for _, b := range f.bookings {
		if b.SessionID == sessionID && b.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) ExistsActiveForSessionAndMember(_ context.Context, sessionID, memberID uuid.UUID, statuses []domain.BookingStatus) (bool, error) {
	for _, b := range f.bookings {
		if b.SessionID != sessionID || b.MemberID != memberID {
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	f.updated = append(f.updated, booking.ID)
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.bookings, id)
	return nil
}

type fakeWebhookPublisher struct {
	noShows []uuid.UUID
}

func (f *fakeWebhookPublisher) PublishBookingNoShow(_ context.Context, _ uuid.UUID, booking *domain.Booking) error {
	f.noShows = append(f.noShows, booking.ID)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func confirmedBooking(sessionID uuid.UUID) *domain.Booking {
	b := domain.NewConfirmed(sessionID, uuid.New(), nil, nil)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	return b
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeWebhookPublisher{}, noopLogger{})

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestMarkNoShow_ConfirmedBooking(t *testing.T) {
	sessionID := uuid.New()
	booking := confirmedBooking(sessionID)
	repo := newFakeBookingRepo(booking)
	publisher := &fakeWebhookPublisher{}
	svc := NewService(repo, publisher, noopLogger{})

	resp, err := svc.MarkNoShow(context.Background(), booking.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	assert.Contains(t, repo.updated, booking.ID)
	assert.Contains(t, publisher.noShows, booking.ID)
}

func TestMarkNoShow_CheckedInBookingRejected(t *testing.T) {
	sessionID := uuid.New()
	booking := confirmedBooking(sessionID)
	require.NoError(t, booking.CheckIn(time.Now()))
	repo := newFakeBookingRepo(booking)
	svc := NewService(repo, &fakeWebhookPublisher{}, noopLogger{})

	_, err := svc.MarkNoShow(context.Background(), booking.ID, uuid.New())
	assert.ErrorIs(t, err, ErrCannotMarkNoShow)
	assert.Empty(t, repo.updated)
}

func TestProcessNoShowsForSession_MarksAllConfirmed(t *testing.T) {
	sessionID := uuid.New()
	b1 := confirmedBooking(sessionID)
	b2 := confirmedBooking(sessionID)
	checkedIn := confirmedBooking(sessionID)
	require.NoError(t, checkedIn.CheckIn(time.Now()))
	otherSession := confirmedBooking(uuid.New())

	repo := newFakeBookingRepo(b1, b2, checkedIn, otherSession)
	publisher := &fakeWebhookPublisher{}
	svc := NewService(repo, publisher, noopLogger{})

	count, err := svc.ProcessNoShowsForSession(context.Background(), sessionID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, domain.StatusNoShow, b1.Status)
	assert.Equal(t, domain.StatusNoShow, b2.Status)
	assert.Equal(t, domain.StatusCheckedIn, checkedIn.Status)
	assert.Equal(t, domain.StatusConfirmed, otherSession.Status)
	assert.Len(t, publisher.noShows, 2)
}

func TestDelete_TerminalBookingOnly(t *testing.T) {
	sessionID := uuid.New()
	cancelled := confirmedBooking(sessionID)
	require.NoError(t, cancelled.Cancel(nil, time.Now()))
	active := confirmedBooking(sessionID)

	repo := newFakeBookingRepo(cancelled, active)
	svc := NewService(repo, &fakeWebhookPublisher{}, noopLogger{})

	require.NoError(t, svc.Delete(context.Background(), cancelled.ID))
	assert.Contains(t, repo.deleted, cancelled.ID)

	err := svc.Delete(context.Background(), active.ID)
	assert.ErrorIs(t, err, ErrNotDeletable)
}

func TestHasMemberBookedSession(t *testing.T) {
	sessionID := uuid.New()
	booking := confirmedBooking(sessionID)
	svc := NewService(newFakeBookingRepo(booking), &fakeWebhookPublisher{}, noopLogger{})

	has, err := svc.HasMemberBookedSession(context.Background(), sessionID, booking.MemberID)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasMemberBookedSession(context.Background(), sessionID, uuid.New())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGetWaitlistBySession(t *testing.T) {
	sessionID := uuid.New()
	waitlisted := domain.NewWaitlisted(sessionID, uuid.New(), 1, nil, nil)
	svc := NewService(newFakeBookingRepo(waitlisted), &fakeWebhookPublisher{}, noopLogger{})

	resp, err := svc.GetWaitlistBySession(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, 1, resp.Entries[0].Position)
	assert.Equal(t, waitlisted.MemberID, resp.Entries[0].MemberID)
}
