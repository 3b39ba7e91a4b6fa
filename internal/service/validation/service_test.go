package validation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GymClassService/internal/domain"
	subscriptionRepo "github.com/m04kA/GymClassService/internal/infra/storage/subscription"
	"github.com/m04kA/GymClassService/pkg/ptr"
	"github.com/m04kA/GymClassService/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.BookingWithSession
	err      error
}

func (f *fakeBookingRepo) ExistsActiveForSessionAndMember(_ context.Context, _, _ uuid.UUID, _ []domain.BookingStatus) (bool, error) {
	return false, nil
}

func (f *fakeBookingRepo) GetActiveWithSessionsForMemberOnDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]*domain.BookingWithSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.existing, nil
}

type fakeSubscriptionRepo struct {
	byID      map[uuid.UUID]*domain.Subscription
	active    *domain.Subscription
	activeErr error
}

func (f *fakeSubscriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Subscription, error) {
	sub, ok := f.byID[id]
	if !ok {
		return nil, subscriptionRepo.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (f *fakeSubscriptionRepo) GetActiveByMemberID(_ context.Context, _ uuid.UUID) (*domain.Subscription, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return f.active, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testMember() *domain.Member {
	return &domain.Member{ID: uuid.New(), Status: domain.MemberActive}
}

func testSession(date time.Time, start, end string) *domain.Session {
	return &domain.Session{
		ID:          uuid.New(),
		GymClassID:  uuid.New(),
		SessionDate: date,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		MaxCapacity: 10,
		Status:      domain.SessionScheduled,
	}
}

func testGymClass(requiresSub, deducts bool) *domain.GymClass {
	return &domain.GymClass{
		ID:                   uuid.New(),
		Name:                 domain.LocalizedText{EN: "Morning Yoga"},
		RequiresSubscription: requiresSub,
		DeductsClassFromPlan: deducts,
		Status:               domain.ClassActive,
	}
}

func activeSubscription(memberID uuid.UUID, classes *int) *domain.Subscription {
	now := time.Now()
	return &domain.Subscription{
		ID:               uuid.New(),
		MemberID:         memberID,
		Status:           domain.SubscriptionActive,
		StartDate:        now.AddDate(0, -1, 0),
		EndDate:          now.AddDate(0, 1, 0),
		ClassesRemaining: classes,
	}
}

func TestValidateEligibility_NoSubscriptionRequired(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeSubscriptionRepo{}, noopLogger{})
	member := testMember()
	session := testSession(time.Now().AddDate(0, 0, 1), "10:00", "11:00")

	result, err := svc.ValidateEligibility(context.Background(), member, session, testGymClass(false, false), nil)
	require.NoError(t, err)
	assert.True(t, result.CanBook)
	assert.Empty(t, result.Reason)
	assert.Nil(t, result.Subscription)
}

func TestValidateEligibility_NoActiveSubscription(t *testing.T) {
	subRepo := &fakeSubscriptionRepo{activeErr: subscriptionRepo.ErrNoActiveSubscription}
	svc := NewService(&fakeBookingRepo{}, subRepo, noopLogger{})
	member := testMember()
	session := testSession(time.Now().AddDate(0, 0, 1), "10:00", "11:00")

	result, err := svc.ValidateEligibility(context.Background(), member, session, testGymClass(true, true), nil)
	require.NoError(t, err)
	assert.False(t, result.CanBook)
	assert.Equal(t, "Member does not have an active subscription", result.Reason)
}

func TestValidateEligibility_NoClassesRemaining(t *testing.T) {
	member := testMember()
	subRepo := &fakeSubscriptionRepo{active: activeSubscription(member.ID, ptr.Ptr(0))}
	svc := NewService(&fakeBookingRepo{}, subRepo, noopLogger{})
	session := testSession(time.Now().AddDate(0, 0, 1), "10:00", "11:00")

	result, err := svc.ValidateEligibility(context.Background(), member, session, testGymClass(true, true), nil)
	require.NoError(t, err)
	assert.False(t, result.CanBook)
	assert.Equal(t, "No classes remaining on subscription", result.Reason)
}

func TestValidateEligibility_UnlimitedPlanWithDeduction(t *testing.T) {
	member := testMember()
	subRepo := &fakeSubscriptionRepo{active: activeSubscription(member.ID, nil)}
	svc := NewService(&fakeBookingRepo{}, subRepo, noopLogger{})
	session := testSession(time.Now().AddDate(0, 0, 1), "10:00", "11:00")

	result, err := svc.ValidateEligibility(context.Background(), member, session, testGymClass(true, true), nil)
	require.NoError(t, err)
	assert.True(t, result.CanBook)
	require.NotNil(t, result.Subscription)
	assert.True(t, result.Subscription.IsUnlimited())
}

func TestValidateEligibility_OverlapRejectedWithClassName(t *testing.T) {
	member := testMember()
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	existingSession := testSession(date, "10:00", "11:00")
	existing := &domain.BookingWithSession{
		Booking:  &domain.Booking{ID: uuid.New(), SessionID: existingSession.ID, MemberID: member.ID, Status: domain.StatusConfirmed},
		Session:  existingSession,
		GymClass: &domain.GymClass{ID: existingSession.GymClassID, Name: domain.LocalizedText{EN: "Spin Class"}},
	}
	svc := NewService(&fakeBookingRepo{existing: []*domain.BookingWithSession{existing}}, &fakeSubscriptionRepo{}, noopLogger{})

	newSession := testSession(date, "10:30", "11:30")
	result, err := svc.ValidateEligibility(context.Background(), member, newSession, testGymClass(false, false), nil)
	require.NoError(t, err)
	assert.False(t, result.CanBook)
	assert.Equal(t, "This booking conflicts with 'Spin Class' at 10:00", result.Reason)
}

func TestValidateEligibility_BackToBackSessionsAllowed(t *testing.T) {
	member := testMember()
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	existingSession := testSession(date, "09:00", "10:00")
	existing := &domain.BookingWithSession{
		Booking:  &domain.Booking{ID: uuid.New(), SessionID: existingSession.ID, MemberID: member.ID, Status: domain.StatusConfirmed},
		Session:  existingSession,
		GymClass: &domain.GymClass{ID: existingSession.GymClassID, Name: domain.LocalizedText{EN: "Spin Class"}},
	}
	svc := NewService(&fakeBookingRepo{existing: []*domain.BookingWithSession{existing}}, &fakeSubscriptionRepo{}, noopLogger{})

	// Конец одного занятия совпадает с началом следующего - не пересечение
	newSession := testSession(date, "10:00", "11:00")
	result, err := svc.ValidateEligibility(context.Background(), member, newSession, testGymClass(false, false), nil)
	require.NoError(t, err)
	assert.True(t, result.CanBook)
}

func TestValidateSubscriptionForBooking_ExplicitID(t *testing.T) {
	member := testMember()
	sub := activeSubscription(member.ID, ptr.Ptr(5))
	subRepo := &fakeSubscriptionRepo{byID: map[uuid.UUID]*domain.Subscription{sub.ID: sub}}
	svc := NewService(&fakeBookingRepo{}, subRepo, noopLogger{})

	got, err := svc.ValidateSubscriptionForBooking(context.Background(), &sub.ID, member, testGymClass(true, true))
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
}

func TestValidateSubscriptionForBooking_NotOwned(t *testing.T) {
	member := testMember()
	other := activeSubscription(uuid.New(), ptr.Ptr(5))
	subRepo := &fakeSubscriptionRepo{byID: map[uuid.UUID]*domain.Subscription{other.ID: other}}
	svc := NewService(&fakeBookingRepo{}, subRepo, noopLogger{})

	_, err := svc.ValidateSubscriptionForBooking(context.Background(), &other.ID, member, testGymClass(true, true))
	assert.ErrorIs(t, err, ErrSubscriptionNotOwned)
}

func TestValidateSubscriptionForBooking_Expired(t *testing.T) {
	member := testMember()
	sub := activeSubscription(member.ID, ptr.Ptr(5))
	sub.Status = domain.SubscriptionExpired
	subRepo := &fakeSubscriptionRepo{byID: map[uuid.UUID]*domain.Subscription{sub.ID: sub}}
	svc := NewService(&fakeBookingRepo{}, subRepo, noopLogger{})

	_, err := svc.ValidateSubscriptionForBooking(context.Background(), &sub.ID, member, testGymClass(true, true))
	assert.ErrorIs(t, err, ErrSubscriptionNotActive)
}

func TestValidateSubscriptionForBooking_NotFound(t *testing.T) {
	member := testMember()
	subRepo := &fakeSubscriptionRepo{byID: map[uuid.UUID]*domain.Subscription{}}
	svc := NewService(&fakeBookingRepo{}, subRepo, noopLogger{})

	missing := uuid.New()
	_, err := svc.ValidateSubscriptionForBooking(context.Background(), &missing, member, testGymClass(true, true))
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestValidateNoOverlappingBookings_SkipsSameSession(t *testing.T) {
	member := testMember()
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	session := testSession(date, "10:00", "11:00")
	existing := &domain.BookingWithSession{
		Booking:  &domain.Booking{ID: uuid.New(), SessionID: session.ID, MemberID: member.ID, Status: domain.StatusConfirmed},
		Session:  session,
		GymClass: &domain.GymClass{ID: session.GymClassID, Name: domain.LocalizedText{EN: "Morning Yoga"}},
	}
	svc := NewService(&fakeBookingRepo{existing: []*domain.BookingWithSession{existing}}, &fakeSubscriptionRepo{}, noopLogger{})

	err := svc.ValidateNoOverlappingBookings(context.Background(), member.ID, session)
	assert.NoError(t, err)
}
