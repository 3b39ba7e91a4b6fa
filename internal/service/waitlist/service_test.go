package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GymClassService/internal/domain"
	"github.com/m04kA/GymClassService/pkg/types"
)

type fakeBookingRepo struct {
	waitlisted []*domain.Booking

	updated   []*domain.Booking
	positions map[uuid.UUID]int
}

func (f *fakeBookingRepo) GetWaitlistedBySessionOrderedByPosition(_ context.Context, _ uuid.UUID) ([]*domain.Booking, error) {
	return f.waitlisted, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	f.updated = append(f.updated, booking)
	return nil
}

func (f *fakeBookingRepo) UpdateWaitlistPosition(_ context.Context, id uuid.UUID, position int) error {
	if f.positions == nil {
		f.positions = make(map[uuid.UUID]int)
	}
	f.positions[id] = position
	return nil
}

type fakeSessionRepo struct {
	session *domain.Session
	saved   *domain.Session
}

func (f *fakeSessionRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Session, error) {
	return f.session, nil
}

func (f *fakeSessionRepo) UpdateCounters(_ context.Context, session *domain.Session) error {
	f.saved = session
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testSession(bookings, waitlistCount int) *domain.Session {
	return &domain.Session{
		ID:              uuid.New(),
		GymClassID:      uuid.New(),
		SessionDate:     time.Now().AddDate(0, 0, 1),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		MaxCapacity:     20,
		CurrentBookings: bookings,
		WaitlistCount:   waitlistCount,
		Status:          domain.SessionScheduled,
	}
}

func waitlistedBooking(sessionID uuid.UUID, position int) *domain.Booking {
	return domain.NewWaitlisted(sessionID, uuid.New(), position, nil, nil)
}

func TestPromoteFromWaitlist_PromotesFirst(t *testing.T) {
	session := testSession(19, 2)
	first := waitlistedBooking(session.ID, 1)
	second := waitlistedBooking(session.ID, 2)
	bookingRepo := &fakeBookingRepo{waitlisted: []*domain.Booking{first, second}}
	sessionRepo := &fakeSessionRepo{session: session}
	svc := NewService(bookingRepo, sessionRepo, noopLogger{})

	promoted, err := svc.PromoteFromWaitlist(context.Background(), session.ID, session)
	require.NoError(t, err)
	require.NotNil(t, promoted)

	assert.Equal(t, first.ID, promoted.ID)
	assert.Equal(t, domain.StatusConfirmed, promoted.Status)
	assert.Nil(t, promoted.WaitlistPosition)

	assert.Equal(t, 20, session.CurrentBookings)
	assert.Equal(t, 1, session.WaitlistCount)
	require.NotNil(t, sessionRepo.saved)

	// Оставшийся лист ожидания перенумерован с 1
	assert.Equal(t, 1, bookingRepo.positions[second.ID])
}

func TestPromoteFromWaitlist_EmptyWaitlist(t *testing.T) {
	session := testSession(10, 0)
	bookingRepo := &fakeBookingRepo{}
	sessionRepo := &fakeSessionRepo{session: session}
	svc := NewService(bookingRepo, sessionRepo, noopLogger{})

	promoted, err := svc.PromoteFromWaitlist(context.Background(), session.ID, session)
	require.NoError(t, err)
	assert.Nil(t, promoted)
	assert.Empty(t, bookingRepo.updated)
	assert.Nil(t, sessionRepo.saved)
}

func TestPromoteFromWaitlist_LoadsSessionWhenNil(t *testing.T) {
	session := testSession(19, 1)
	first := waitlistedBooking(session.ID, 1)
	bookingRepo := &fakeBookingRepo{waitlisted: []*domain.Booking{first}}
	sessionRepo := &fakeSessionRepo{session: session}
	svc := NewService(bookingRepo, sessionRepo, noopLogger{})

	promoted, err := svc.PromoteFromWaitlist(context.Background(), session.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, 20, session.CurrentBookings)
}

func TestPromoteFromWaitlist_FullSessionFails(t *testing.T) {
	session := testSession(20, 1)
	first := waitlistedBooking(session.ID, 1)
	bookingRepo := &fakeBookingRepo{waitlisted: []*domain.Booking{first}}
	sessionRepo := &fakeSessionRepo{session: session}
	svc := NewService(bookingRepo, sessionRepo, noopLogger{})

	_, err := svc.PromoteFromWaitlist(context.Background(), session.ID, session)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestReorder_CompactsPositions(t *testing.T) {
	sessionID := uuid.New()
	// Позиции с дырой после отмены второго участника
	b1 := waitlistedBooking(sessionID, 1)
	b3 := waitlistedBooking(sessionID, 3)
	b4 := waitlistedBooking(sessionID, 4)
	bookingRepo := &fakeBookingRepo{waitlisted: []*domain.Booking{b1, b3, b4}}
	svc := NewService(bookingRepo, &fakeSessionRepo{}, noopLogger{})

	err := svc.Reorder(context.Background(), sessionID)
	require.NoError(t, err)

	// b1 уже на месте, трогать не нужно
	_, touched := bookingRepo.positions[b1.ID]
	assert.False(t, touched)
	assert.Equal(t, 2, bookingRepo.positions[b3.ID])
	assert.Equal(t, 3, bookingRepo.positions[b4.ID])
}

func TestReorder_EmptyWaitlist(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	svc := NewService(bookingRepo, &fakeSessionRepo{}, noopLogger{})

	err := svc.Reorder(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, bookingRepo.positions)
}
