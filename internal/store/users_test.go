package store

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

func assertStatsConsistent(t *testing.T, state UserState) {
	t.Helper()
	assert.Equal(t, models.ComputeUserStats(state.Items), state.Stats)
}

func seedUsers() []models.User {
	return []models.User{
		{ID: "u1", FirstName: "Ravi", Status: models.UserStatusPending},
		{ID: "u2", FirstName: "Meera", Status: models.UserStatusApproved},
		{ID: "u3", FirstName: "Kiran", Status: models.UserStatusRejected},
	}
}

func TestUsersFetchAllComputesStats(t *testing.T) {
	b := newFakeBackend(t)
	var query string
	b.handle("GET /admin/list-users", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeData(w, seedUsers())
	})

	users := NewUsers(b.client, zerolog.Nop())
	require.NoError(t, users.FetchAll(context.Background(), ""))

	state := users.State()
	assert.Empty(t, query)
	assert.Len(t, state.Items, 3)
	assert.Equal(t, models.UserStats{TotalUsers: 3, ApprovedUsers: 1, PendingUsers: 1}, state.Stats)
	assert.False(t, state.Loading)
	assertStatsConsistent(t, state)

	require.NoError(t, users.FetchAll(context.Background(), models.UserStatusPending))
	assert.Equal(t, "status=pending", query)
	assert.Equal(t, models.UserStatusPending, users.State().StatusFilter)
}

func TestUsersFetchAllLastSettledWins(t *testing.T) {
	b := newFakeBackend(t)
	release := map[string]chan struct{}{
		"pending":  make(chan struct{}),
		"approved": make(chan struct{}),
	}
	arrived := make(chan string, 2)
	b.handle("GET /admin/list-users", func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		arrived <- status
		<-release[status]
		writeData(w, []models.User{{ID: status, Status: models.UserStatus(status)}})
	})

	users := NewUsers(b.client, zerolog.Nop())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, users.FetchAll(context.Background(), models.UserStatusPending))
	}()
	<-arrived
	go func() {
		defer wg.Done()
		assert.NoError(t, users.FetchAll(context.Background(), models.UserStatusApproved))
	}()
	<-arrived

	// The second dispatch settles first.
	close(release["approved"])
	require.Eventually(t, func() bool {
		items := users.State().Items
		return len(items) == 1 && items[0].ID == "approved"
	}, 2*time.Second, 10*time.Millisecond)
	close(release["pending"])
	wg.Wait()

	state := users.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "pending", state.Items[0].ID)
	assertStatsConsistent(t, state)
}

func TestUsersFetchFailureKeepsItems(t *testing.T) {
	b := newFakeBackend(t)
	var fail atomic.Bool
	b.handle("GET /admin/list-users", func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			writeFailure(w, http.StatusInternalServerError, "")
			return
		}
		writeData(w, seedUsers())
	})

	users := NewUsers(b.client, zerolog.Nop())
	require.NoError(t, users.FetchAll(context.Background(), ""))
	fail.Store(true)
	require.Error(t, users.FetchAll(context.Background(), ""))

	state := users.State()
	assert.Len(t, state.Items, 3)
	assert.False(t, state.Loading)
	assert.Equal(t, "Something went wrong", state.Error)
	assertStatsConsistent(t, state)
}

func TestUsersUpdateStatusRecomputesStats(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("GET /admin/list-users", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, seedUsers())
	})
	var body map[string]string
	b.handle("PATCH /admin/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeData(w, models.User{ID: r.PathValue("id"), FirstName: "Ravi", Status: models.UserStatus(body["status"])})
	})

	users := NewUsers(b.client, zerolog.Nop())
	require.NoError(t, users.FetchAll(context.Background(), ""))
	users.SetCurrent(seedUsers()[0])

	require.NoError(t, users.UpdateStatus(context.Background(), "u1", models.UserStatusApproved))
	assert.Equal(t, "approved", body["status"])

	state := users.State()
	assert.True(t, state.Success)
	assert.Equal(t, 2, state.Stats.ApprovedUsers)
	assert.Equal(t, 0, state.Stats.PendingUsers)
	require.NotNil(t, state.Current)
	assert.Equal(t, models.UserStatusApproved, state.Current.Status)
	assertStatsConsistent(t, state)
}

func TestUsersUpdateStatusRejectsUnknownStatus(t *testing.T) {
	b := newFakeBackend(t)
	users := NewUsers(b.client, zerolog.Nop())
	require.Error(t, users.UpdateStatus(context.Background(), "u1", "archived"))
	assert.Equal(t, int32(0), b.calls.Load())
	assert.Equal(t, Flags{}, users.State().Flags)
}

func TestUsersSetBlockedUnknownIDIsNoop(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("GET /admin/list-users", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, seedUsers())
	})
	var body map[string]bool
	b.handle("PATCH /admin/{id}/block", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeData(w, models.User{ID: r.PathValue("id"), IsBlocked: body["isBlocked"]})
	})

	users := NewUsers(b.client, zerolog.Nop())
	require.NoError(t, users.FetchAll(context.Background(), ""))
	before := users.State().Items

	require.NoError(t, users.SetBlocked(context.Background(), "gone", true))
	assert.True(t, body["isBlocked"])
	assert.Equal(t, before, users.State().Items)

	require.NoError(t, users.SetBlocked(context.Background(), "u2", true))
	assert.True(t, users.State().Items[1].IsBlocked)
}

func TestUsersFetchOneSetsCurrent(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("GET /admin/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, models.User{ID: r.PathValue("id"), FirstName: "Meera"})
	})

	users := NewUsers(b.client, zerolog.Nop())
	require.NoError(t, users.FetchOne(context.Background(), "u2"))
	state := users.State()
	require.NotNil(t, state.Current)
	assert.Equal(t, "u2", state.Current.ID)
	assert.Empty(t, state.Items)

	users.ClearCurrent()
	assert.Nil(t, users.State().Current)
}
