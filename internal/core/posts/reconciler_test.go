package posts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadedRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(&fakeStore{})
}

func TestReconcilerAppliesEventsInOrder(t *testing.T) {
	repo := newLoadedRepo(t)
	rc := NewReconciler(repo)
	defer rc.Close()

	now := time.Now()
	first := rec(1, "first", now)
	second := rec(2, "second", now.Add(time.Minute))
	edited := rec(1, "first edited", now)
	gone := Record{ID: 2}

	require.True(t, rc.Submit(ChangeEvent{Action: ActionInsert, New: &first}))
	require.True(t, rc.Submit(ChangeEvent{Action: ActionInsert, New: &second}))
	require.True(t, rc.Submit(ChangeEvent{Action: ActionUpdate, New: &edited}))
	require.True(t, rc.Submit(ChangeEvent{Action: ActionDelete, Old: &gone}))

	require.Eventually(t, func() bool {
		got := repo.Posts()
		return len(got) == 1 && got[0].ID == 1 && got[0].Title == "first edited"
	}, time.Second, 5*time.Millisecond, "events must be applied in submission order")
}

func TestReconcilerDropsMalformedEvents(t *testing.T) {
	repo := newLoadedRepo(t)
	rc := NewReconciler(repo)
	defer rc.Close()

	valid := rec(1, "valid", time.Now())

	// None of these may kill the consumer loop.
	require.True(t, rc.Submit(ChangeEvent{Action: ActionInsert, New: nil}))
	require.True(t, rc.Submit(ChangeEvent{Action: ActionInsert, New: &Record{ID: 0}}))
	require.True(t, rc.Submit(ChangeEvent{Action: ActionDelete, Old: nil}))
	require.True(t, rc.Submit(ChangeEvent{Action: "TRUNCATE", New: &valid}))
	require.True(t, rc.Submit(ChangeEvent{Action: ActionInsert, New: &valid}))

	require.Eventually(t, func() bool {
		return len(repo.Posts()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{1}, ids(repo.Posts()))
}

func TestReconcilerCloseStopsDelivery(t *testing.T) {
	repo := newLoadedRepo(t)
	rc := NewReconciler(repo)

	rc.Close()

	late := rec(1, "late", time.Now())
	assert.False(t, rc.Submit(ChangeEvent{Action: ActionInsert, New: &late}),
		"submit after close must report the drop")
	assert.Empty(t, repo.Posts())
}

func TestReconcilerCloseIsIdempotent(t *testing.T) {
	rc := NewReconciler(newLoadedRepo(t))
	rc.Close()
	rc.Close()
}

func TestReconcilerStateLifecycle(t *testing.T) {
	rc := NewReconciler(newLoadedRepo(t))

	assert.Equal(t, StateDisconnected, rc.State())

	rc.SetState(StateConnecting)
	assert.Equal(t, StateConnecting, rc.State())

	rc.SetState(StateConnected)
	assert.Equal(t, StateConnected, rc.State())

	rc.Close()
	assert.Equal(t, StateDisconnected, rc.State())
}
