package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GymClassService/internal/domain"
	memberRepo "github.com/m04kA/GymClassService/internal/infra/storage/member"
	"github.com/m04kA/GymClassService/internal/service/validation"
	"github.com/m04kA/GymClassService/pkg/types"
)

type fakeBookingRepo struct {
	exists  bool
	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) ExistsActiveForSessionAndMember(_ context.Context, _, _ uuid.UUID, _ []domain.BookingStatus) (bool, error) {
	return f.exists, nil
}

type fakeSessionRepo struct {
	session *domain.Session
	saved   bool
}

func (f *fakeSessionRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Session, error) {
	return f.session, nil
}

func (f *fakeSessionRepo) UpdateCounters(_ context.Context, _ *domain.Session) error {
	f.saved = true
	return nil
}

type fakeGymClassRepo struct {
	gymClass *domain.GymClass
}

func (f *fakeGymClassRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.GymClass, error) {
	return f.gymClass, nil
}

type fakeMemberRepo struct {
	member *domain.Member
}

func (f *fakeMemberRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Member, error) {
	if f.member == nil {
		return nil, memberRepo.ErrMemberNotFound
	}
	return f.member, nil
}

type fakeValidationService struct {
	result *validation.Result
}

func (f *fakeValidationService) ValidateEligibility(_ context.Context, _ *domain.Member, _ *domain.Session, _ *domain.GymClass, _ *uuid.UUID) (*validation.Result, error) {
	return f.result, nil
}

type fakeNotificationClient struct {
	confirmations int
	waitlistAdds  int
	lastPosition  int
}

func (f *fakeNotificationClient) SendBookingConfirmation(_ context.Context, _ *domain.Member, _ *domain.Session, _ *domain.GymClass) error {
	f.confirmations++
	return nil
}

func (f *fakeNotificationClient) SendWaitlistAdded(_ context.Context, _ *domain.Member, _ *domain.Session, _ *domain.GymClass, position int) error {
	f.waitlistAdds++
	f.lastPosition = position
	return nil
}

type fakeWebhookPublisher struct {
	created   int
	confirmed int
}

func (f *fakeWebhookPublisher) PublishBookingCreated(_ context.Context, _ uuid.UUID, _ *domain.Booking) error {
	f.created++
	return nil
}

func (f *fakeWebhookPublisher) PublishBookingConfirmed(_ context.Context, _ uuid.UUID, _ *domain.Booking) error {
	f.confirmed++
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
	bookingRepo  *fakeBookingRepo
	sessionRepo  *fakeSessionRepo
	gymClassRepo *fakeGymClassRepo
	memberRepo   *fakeMemberRepo
	validation   *fakeValidationService
	notification *fakeNotificationClient
	webhooks     *fakeWebhookPublisher
	uc           *UseCase

	session  *domain.Session
	gymClass *domain.GymClass
	member   *domain.Member
}

func newFixture(currentBookings, waitlistCount int) *fixture {
	gymClass := &domain.GymClass{
		ID:              uuid.New(),
		Name:            domain.LocalizedText{EN: "Morning Yoga"},
		MaxCapacity:     20,
		WaitlistEnabled: true,
		MaxWaitlistSize: 5,
		Status:          domain.ClassActive,
	}
	session := &domain.Session{
		ID:              uuid.New(),
		GymClassID:      gymClass.ID,
		SessionDate:     time.Now().AddDate(0, 0, 1),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		MaxCapacity:     20,
		CurrentBookings: currentBookings,
		WaitlistCount:   waitlistCount,
		Status:          domain.SessionScheduled,
	}
	member := &domain.Member{ID: uuid.New(), Status: domain.MemberActive}

	f := &fixture{
		bookingRepo:  &fakeBookingRepo{},
		sessionRepo:  &fakeSessionRepo{session: session},
		gymClassRepo: &fakeGymClassRepo{gymClass: gymClass},
		memberRepo:   &fakeMemberRepo{member: member},
		validation:   &fakeValidationService{result: &validation.Result{CanBook: true}},
		notification: &fakeNotificationClient{},
		webhooks:     &fakeWebhookPublisher{},
		session:      session,
		gymClass:     gymClass,
		member:       member,
	}
	f.uc = NewUseCase(
		f.bookingRepo, f.sessionRepo, f.gymClassRepo, f.memberRepo,
		f.validation, f.notification, f.webhooks, fakeTxManager{}, noopLogger{},
	)
	return f
}

func (f *fixture) request() *Request {
	return &Request{
		SessionID: f.session.ID,
		MemberID:  f.member.ID,
		TenantID:  uuid.New(),
	}
}

func TestExecute_ConfirmedWhenCapacityAvailable(t *testing.T) {
	f := newFixture(0, 0)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.WaitlistPosition)
	assert.Equal(t, 1, f.session.CurrentBookings)
	assert.True(t, f.sessionRepo.saved)
	assert.Equal(t, 1, f.notification.confirmations)
	assert.Equal(t, 1, f.webhooks.confirmed)
	assert.Zero(t, f.webhooks.created)
}

func TestExecute_WaitlistedWhenFull(t *testing.T) {
	f := newFixture(20, 0)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusWaitlisted), resp.Status)
	require.NotNil(t, resp.WaitlistPosition)
	assert.Equal(t, 1, *resp.WaitlistPosition)
	assert.Equal(t, 20, f.session.CurrentBookings)
	assert.Equal(t, 1, f.session.WaitlistCount)
	assert.Equal(t, 1, f.notification.waitlistAdds)
	assert.Equal(t, 1, f.notification.lastPosition)
	assert.Equal(t, 1, f.webhooks.created)
}

func TestExecute_WaitlistPositionsSequential(t *testing.T) {
	f := newFixture(20, 2)

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	require.NotNil(t, resp.WaitlistPosition)
	assert.Equal(t, 3, *resp.WaitlistPosition)
	assert.Equal(t, 3, f.session.WaitlistCount)
}

func TestExecute_SessionFullAndWaitlistFull(t *testing.T) {
	f := newFixture(20, 5)

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSessionFull)
	assert.Nil(t, f.bookingRepo.created)
}

func TestExecute_WaitlistDisabled(t *testing.T) {
	f := newFixture(20, 0)
	f.gymClass.WaitlistEnabled = false

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	f := newFixture(0, 0)
	f.bookingRepo.exists = true

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_CancelledSessionNotBookable(t *testing.T) {
	f := newFixture(0, 0)
	f.session.Status = domain.SessionCancelled

	_, err := f.uc.Execute(context.Background(), f.request())
	assert.ErrorIs(t, err, ErrSessionNotBookable)
}

func TestExecute_ValidationRejectionCarriesReason(t *testing.T) {
	f := newFixture(0, 0)
	f.validation.result = &validation.Result{CanBook: false, Reason: "No classes remaining on subscription"}

	_, err := f.uc.Execute(context.Background(), f.request())
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "No classes remaining on subscription")
}

func TestExecute_BindsValidatedSubscription(t *testing.T) {
	f := newFixture(0, 0)
	sub := &domain.Subscription{ID: uuid.New(), MemberID: f.member.ID, Status: domain.SubscriptionActive}
	f.validation.result = &validation.Result{CanBook: true, Subscription: sub}

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)
	require.NotNil(t, resp.SubscriptionID)
	assert.Equal(t, sub.ID, *resp.SubscriptionID)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(0, 0)

	_, err := f.uc.Execute(context.Background(), &Request{MemberID: f.member.ID, TenantID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
