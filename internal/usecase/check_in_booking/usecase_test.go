package check_in_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GymClassService/internal/domain"
	bookingRepo "github.com/m04kA/GymClassService/internal/infra/storage/booking"
	"github.com/m04kA/GymClassService/pkg/ptr"
	"github.com/m04kA/GymClassService/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
	updates  int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	f.bookings[booking.ID] = booking
	f.updates++
	return nil
}

type fakeSessionRepo struct {
	session *domain.Session
	saves   int
}

func (f *fakeSessionRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Session, error) {
	return f.session, nil
}

func (f *fakeSessionRepo) UpdateCounters(_ context.Context, _ *domain.Session) error {
	f.saves++
	return nil
}

type fakeGymClassRepo struct {
	gymClass *domain.GymClass
}

func (f *fakeGymClassRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.GymClass, error) {
	return f.gymClass, nil
}

type fakeSubscriptionRepo struct {
	sub   *domain.Subscription
	saves int
}

func (f *fakeSubscriptionRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Subscription, error) {
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) UpdateClassesRemaining(_ context.Context, sub *domain.Subscription) error {
	f.sub = sub
	f.saves++
	return nil
}

type fakeWebhookPublisher struct {
	completed int
}

func (f *fakeWebhookPublisher) PublishBookingCompleted(_ context.Context, _ uuid.UUID, _ *domain.Booking) error {
	f.completed++
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixture struct {
	bookingRepo *fakeBookingRepo
	sessionRepo *fakeSessionRepo
	subRepo     *fakeSubscriptionRepo
	webhooks    *fakeWebhookPublisher
	uc          *UseCase

	session  *domain.Session
	gymClass *domain.GymClass
	booking  *domain.Booking
}

func newFixture(deductsClass bool) *fixture {
	gymClass := &domain.GymClass{
		ID:                   uuid.New(),
		Name:                 domain.LocalizedText{EN: "Morning Yoga"},
		MaxCapacity:          20,
		DeductsClassFromPlan: deductsClass,
		Status:               domain.ClassActive,
	}
	session := &domain.Session{
		ID:              uuid.New(),
		GymClassID:      gymClass.ID,
		SessionDate:     time.Now(),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		MaxCapacity:     20,
		CurrentBookings: 5,
		Status:          domain.SessionScheduled,
	}
	booking := domain.NewConfirmed(session.ID, uuid.New(), nil, nil)

	f := &fixture{
		bookingRepo: &fakeBookingRepo{bookings: map[uuid.UUID]*domain.Booking{booking.ID: booking}},
		sessionRepo: &fakeSessionRepo{session: session},
		subRepo:     &fakeSubscriptionRepo{},
		webhooks:    &fakeWebhookPublisher{},
		session:     session,
		gymClass:    gymClass,
		booking:     booking,
	}
	f.uc = NewUseCase(
		f.bookingRepo, f.sessionRepo, &fakeGymClassRepo{gymClass: gymClass}, f.subRepo,
		f.webhooks, fakeTxManager{}, noopLogger{},
	)
	return f
}

func (f *fixture) withSubscription(classes *int) *domain.Subscription {
	sub := &domain.Subscription{
		ID:               uuid.New(),
		MemberID:         f.booking.MemberID,
		Status:           domain.SubscriptionActive,
		StartDate:        time.Now().AddDate(0, -1, 0),
		EndDate:          time.Now().AddDate(0, 1, 0),
		ClassesRemaining: classes,
	}
	f.subRepo.sub = sub
	f.booking.SubscriptionID = &sub.ID
	return sub
}

func (f *fixture) request() *Request {
	return &Request{BookingID: f.booking.ID, TenantID: uuid.New()}
}

func TestExecute_CheckInDeductsClass(t *testing.T) {
	f := newFixture(true)
	f.withSubscription(ptr.Ptr(10))

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
	assert.True(t, resp.ClassDeducted)
	require.NotNil(t, resp.CheckedInAt)
	assert.Equal(t, 9, *f.subRepo.sub.ClassesRemaining)
	assert.Equal(t, 1, f.session.CheckedInCount)
	assert.Equal(t, 1, f.webhooks.completed)
}

func TestExecute_SecondCheckInRejected(t *testing.T) {
	f := newFixture(true)
	f.withSubscription(ptr.Ptr(10))

	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Повторный чек-ин не проходит и не списывает второе занятие
	_, err = f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrCannotCheckIn)
	assert.Equal(t, 9, *f.subRepo.sub.ClassesRemaining)
	assert.Equal(t, 1, f.subRepo.saves)
}

func TestExecute_NoDeductionWhenClassDoesNotRequireIt(t *testing.T) {
	f := newFixture(false)
	f.withSubscription(ptr.Ptr(10))

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.False(t, resp.ClassDeducted)
	assert.Equal(t, 10, *f.subRepo.sub.ClassesRemaining)
	assert.Zero(t, f.subRepo.saves)
}

func TestExecute_ZeroBalanceAllowsCheckIn(t *testing.T) {
	f := newFixture(true)
	f.withSubscription(ptr.Ptr(0))

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Участник уже записан, чек-ин проходит без списания
	assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
	assert.False(t, resp.ClassDeducted)
	assert.Equal(t, 0, *f.subRepo.sub.ClassesRemaining)
}

func TestExecute_UnlimitedPlanKeepsNilBalance(t *testing.T) {
	f := newFixture(true)
	f.withSubscription(nil)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
	assert.True(t, resp.ClassDeducted)
	assert.Nil(t, f.subRepo.sub.ClassesRemaining)
}

func TestExecute_WaitlistedBookingRejected(t *testing.T) {
	f := newFixture(false)
	waitlisted := domain.NewWaitlisted(f.session.ID, uuid.New(), 1, nil, nil)
	f.bookingRepo.bookings[waitlisted.ID] = waitlisted

	req := f.request()
	req.BookingID = waitlisted.ID

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCannotCheckIn)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(false)
	req := f.request()
	req.BookingID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
