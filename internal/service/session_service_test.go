package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap_api/internal/model"
)

// acceptSession drives a request through acceptance and returns the session.
func acceptSession(t *testing.T, f *fixture, minutes int) *model.Session {
	t.Helper()
	ctx := context.Background()

	req, err := f.requests.Create(ctx, CreateInput{
		FromEmail: "ana@uni.edu", ToEmail: "bob@uni.edu", CourseCode: "CS3310", Minutes: minutes,
	})
	require.NoError(t, err)
	accepted, err := f.requests.Accept(ctx, req.ID, "bob@uni.edu")
	require.NoError(t, err)
	require.NotNil(t, accepted.SessionID)

	session, err := f.sessions.Get(ctx, *accepted.SessionID)
	require.NoError(t, err)
	return session
}

func TestSessionSchedule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := acceptSession(t, f, 90)

	start := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	scheduled, err := f.sessions.Schedule(ctx, session.ID, "ana@uni.edu", start)
	require.NoError(t, err)
	require.NotNil(t, scheduled.StartAt)
	assert.Equal(t, start, *scheduled.StartAt)
	assert.Equal(t, start.Add(90*time.Minute), *scheduled.EndAt)

	// Rescheduling overwrites.
	later := start.Add(48 * time.Hour)
	scheduled, err = f.sessions.Schedule(ctx, session.ID, "bob@uni.edu", later)
	require.NoError(t, err)
	assert.Equal(t, later, *scheduled.StartAt)

	_, err = f.sessions.Schedule(ctx, session.ID, "mallory@uni.edu", start)
	var aerr *AuthorizationError
	require.ErrorAs(t, err, &aerr)
}

func TestSessionComplete_MintsForWholeHours(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := acceptSession(t, f, 90)

	done, err := f.sessions.Complete(ctx, session.ID, "ana@uni.edu")
	require.NoError(t, err)
	assert.True(t, done.Done())
	require.NotNil(t, done.EndAt)

	// floor(90/60) = 1 token to the teacher, on top of the bootstrap grant.
	balance, err := f.users.Balance(ctx, "bob@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, 2, balance.Tokens)
}

func TestSessionComplete_ShortSessionMintsNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := acceptSession(t, f, 30)

	_, err := f.sessions.Complete(ctx, session.ID, "bob@uni.edu")
	require.NoError(t, err)

	balance, err := f.users.Balance(ctx, "bob@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, 1, balance.Tokens)
}

func TestSessionComplete_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := acceptSession(t, f, 120)

	first, err := f.sessions.Complete(ctx, session.ID, "bob@uni.edu")
	require.NoError(t, err)
	firstEnd := *first.EndAt

	// A later retry neither mints again nor refreshes end_at.
	f.sessions.now = func() time.Time { return firstEnd.Add(time.Hour) }
	second, err := f.sessions.Complete(ctx, session.ID, "bob@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, firstEnd, *second.EndAt)

	balance, err := f.users.Balance(ctx, "bob@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, 3, balance.Tokens)
}

func TestSessionSchedule_AfterCompletion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := acceptSession(t, f, 60)

	_, err := f.sessions.Complete(ctx, session.ID, "bob@uni.edu")
	require.NoError(t, err)

	_, err = f.sessions.Schedule(ctx, session.ID, "ana@uni.edu", time.Now().Add(24*time.Hour))
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Msg, "already completed")
}

func TestSessionComplete_Authorization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := acceptSession(t, f, 60)

	_, err := f.sessions.Complete(ctx, session.ID, "mallory@uni.edu")
	var aerr *AuthorizationError
	require.ErrorAs(t, err, &aerr)

	_, err = f.sessions.Complete(ctx, session.ID+100, "bob@uni.edu")
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
}
