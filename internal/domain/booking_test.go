package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmed(t *testing.T) {
	sessionID := uuid.New()
	memberID := uuid.New()
	subscriptionID := uuid.New()

	booking := NewConfirmed(sessionID, memberID, &subscriptionID, nil)

	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, sessionID, booking.SessionID)
	assert.Equal(t, memberID, booking.MemberID)
	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.Nil(t, booking.WaitlistPosition)
	assert.False(t, booking.ClassDeducted)

	assert.True(t, booking.IsConfirmed())
	assert.True(t, booking.IsActive())
	assert.True(t, booking.CanBeCancelled())
}

func TestNewWaitlisted(t *testing.T) {
	booking := NewWaitlisted(uuid.New(), uuid.New(), 3, nil, nil)

	assert.Equal(t, StatusWaitlisted, booking.Status)
	require.NotNil(t, booking.WaitlistPosition)
	assert.Equal(t, 3, *booking.WaitlistPosition)
	assert.True(t, booking.IsWaitlisted())
	assert.True(t, booking.IsActive())
}

func TestBooking_Confirm(t *testing.T) {
	booking := NewWaitlisted(uuid.New(), uuid.New(), 1, nil, nil)

	err := booking.Confirm()

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.Nil(t, booking.WaitlistPosition)
}

func TestBooking_Confirm_AlreadyConfirmed(t *testing.T) {
	booking := NewConfirmed(uuid.New(), uuid.New(), nil, nil)

	err := booking.Confirm()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Cancel(t *testing.T) {
	booking := NewConfirmed(uuid.New(), uuid.New(), nil, nil)
	reason := "schedule conflict"
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	err := booking.Cancel(&reason, now)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, booking.Status)
	require.NotNil(t, booking.CancelledAt)
	assert.Equal(t, now, *booking.CancelledAt)
	require.NotNil(t, booking.CancellationReason)
	assert.Equal(t, reason, *booking.CancellationReason)
	assert.False(t, booking.IsActive())
	assert.False(t, booking.CanBeCancelled())
}

func TestBooking_Cancel_Waitlisted(t *testing.T) {
	booking := NewWaitlisted(uuid.New(), uuid.New(), 2, nil, nil)

	err := booking.Cancel(nil, time.Now())

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, booking.Status)
	assert.Nil(t, booking.WaitlistPosition)
}

func TestBooking_Cancel_CheckedIn(t *testing.T) {
	booking := NewConfirmed(uuid.New(), uuid.New(), nil, nil)
	require.NoError(t, booking.CheckIn(time.Now()))

	err := booking.Cancel(nil, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusCheckedIn, booking.Status)
}

func TestBooking_CheckIn(t *testing.T) {
	booking := NewConfirmed(uuid.New(), uuid.New(), nil, nil)
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

	err := booking.CheckIn(now)

	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, booking.Status)
	require.NotNil(t, booking.CheckedInAt)
	assert.Equal(t, now, *booking.CheckedInAt)
}

func TestBooking_CheckIn_Waitlisted(t *testing.T) {
	booking := NewWaitlisted(uuid.New(), uuid.New(), 1, nil, nil)

	err := booking.CheckIn(time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_MarkNoShow(t *testing.T) {
	booking := NewConfirmed(uuid.New(), uuid.New(), nil, nil)

	err := booking.MarkNoShow()

	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, booking.Status)
}

func TestBooking_MarkNoShow_NotConfirmed(t *testing.T) {
	booking := NewConfirmed(uuid.New(), uuid.New(), nil, nil)
	require.NoError(t, booking.Cancel(nil, time.Now()))

	err := booking.MarkNoShow()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_SetWaitlistPosition(t *testing.T) {
	booking := NewWaitlisted(uuid.New(), uuid.New(), 5, nil, nil)

	err := booking.SetWaitlistPosition(2)

	require.NoError(t, err)
	require.NotNil(t, booking.WaitlistPosition)
	assert.Equal(t, 2, *booking.WaitlistPosition)
}

func TestBooking_SetWaitlistPosition_Invalid(t *testing.T) {
	booking := NewWaitlisted(uuid.New(), uuid.New(), 1, nil, nil)

	assert.Error(t, booking.SetWaitlistPosition(0))

	confirmed := NewConfirmed(uuid.New(), uuid.New(), nil, nil)
	assert.Error(t, confirmed.SetWaitlistPosition(1))
}

func TestBooking_MarkClassDeducted(t *testing.T) {
	booking := NewConfirmed(uuid.New(), uuid.New(), nil, nil)

	booking.MarkClassDeducted()

	assert.True(t, booking.ClassDeducted)
}
