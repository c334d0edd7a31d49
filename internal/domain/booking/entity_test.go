package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduqar/tutor-marketplace/internal/httperr"
	"github.com/eduqar/tutor-marketplace/internal/models"
)

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:            1,
		TeacherID:     1,
		ParentID:      20,
		ScheduledDate: monday,
		StartMinute:   570,
		EndMinute:     630,
		Status:        string(StatusPending),
		PaymentStatus: string(PaymentPending),
	}
}

func TestConfirmStampsTimestampOnce(t *testing.T) {
	b := pendingBooking()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, Confirm(b, RoleTeacher, now))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	require.NotNil(t, b.ConfirmedAt)
	first := *b.ConfirmedAt

	// re-confirming fails and leaves the original timestamp untouched
	err := Confirm(b, RoleTeacher, now.Add(time.Hour))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
	assert.Equal(t, first, *b.ConfirmedAt)
}

func TestCompleteAndCancelTimestamps(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	b := pendingBooking()
	require.NoError(t, Confirm(b, RoleTeacher, now))
	require.NoError(t, Complete(b, RoleTeacher, now.Add(2*time.Hour)))
	require.NotNil(t, b.CompletedAt)

	b = pendingBooking()
	require.NoError(t, Cancel(b, RoleParent, now, "sick kid"))
	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, "sick kid", b.CancellationReason)
}

func TestCancelWithoutReasonKeepsFieldEmpty(t *testing.T) {
	b := pendingBooking()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, Cancel(b, RoleParent, now, ""))
	assert.Empty(t, b.CancellationReason)
}

func TestFailedTransitionLeavesRecordUntouched(t *testing.T) {
	b := pendingBooking()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	err := Complete(b, RoleTeacher, now) // pending -> completed is illegal
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
	assert.Equal(t, string(StatusPending), b.Status)
	assert.Nil(t, b.CompletedAt)
}

func TestSessionStart(t *testing.T) {
	b := pendingBooking() // 09:30 on the scheduled date

	start := SessionStart(b, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC), start)
}

func TestCanCancelWithNotice(t *testing.T) {
	b := pendingBooking()
	start := SessionStart(b, time.UTC)

	assert.True(t, CanCancelWithNotice(b, start.Add(-25*time.Hour), time.UTC))
	assert.False(t, CanCancelWithNotice(b, start.Add(-23*time.Hour), time.UTC))
	assert.False(t, CanCancelWithNotice(b, start.Add(-24*time.Hour), time.UTC))
	assert.False(t, CanCancelWithNotice(b, start.Add(-time.Hour), time.UTC))
}

func TestResolveRole(t *testing.T) {
	b := pendingBooking() // parent 20, teacher profile owned by user 10

	role, err := ResolveRole(Actor{UserID: 20}, b, 10)
	require.NoError(t, err)
	assert.Equal(t, RoleParent, role)

	role, err = ResolveRole(Actor{UserID: 10}, b, 10)
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, role)

	role, err = ResolveRole(Actor{UserID: 99, IsAdmin: true}, b, 10)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ResolveRole(Actor{UserID: 99}, b, 10)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
}

func TestAssignMeetingLink(t *testing.T) {
	b := pendingBooking()
	b.SessionType = SessionOnline

	AssignMeetingLink(b)
	require.NotEmpty(t, b.MeetingLink)
	assert.True(t, strings.HasPrefix(b.MeetingLink, "https://meet.eduqar.com/"))

	// existing links are kept
	link := b.MeetingLink
	AssignMeetingLink(b)
	assert.Equal(t, link, b.MeetingLink)

	// in-person sessions never get one
	inPerson := pendingBooking()
	inPerson.SessionType = SessionInPerson
	AssignMeetingLink(inPerson)
	assert.Empty(t, inPerson.MeetingLink)
}
