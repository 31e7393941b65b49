package store

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/config"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/events"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

var testLimits = config.UploadConfig{ProductMaxBytes: 10 << 20, CategoryMaxBytes: 5 << 20, MaxProductImages: 5}

func TestAppSummary(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("GET /admin/list-users", func(w http.ResponseWriter, r *http.Request) {
		users := make([]models.User, 0, 7)
		for i := 1; i <= 7; i++ {
			status := models.UserStatusPending
			if i%2 == 0 {
				status = models.UserStatusApproved
			}
			users = append(users, models.User{ID: fmt.Sprintf("u%d", i), FirstName: "User", LastName: fmt.Sprint(i), Status: status})
		}
		writeData(w, users)
	})
	b.handle("GET /admin/list-products", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Product{
			{ID: "p1", Name: "Ring", Weight: 4.5, MakingChargesPerGram: 350},
			{ID: "p2", Name: "Chain", Weight: 12.25, MakingChargesPerGram: 410.5},
		})
	})

	app, err := NewApp(context.Background(), testLimits, b.client, b.tokens, nil, events.NewBus(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, app.Refresh(context.Background()))

	summary := app.Summary()
	assert.Equal(t, 7, summary.Stats.TotalUsers)
	assert.Equal(t, 3, summary.Stats.ApprovedUsers)
	assert.Equal(t, 4, summary.Stats.PendingUsers)
	assert.Equal(t, 2, summary.Stats.TotalProducts)
	assert.False(t, summary.Loading)
	assert.Empty(t, summary.Error)

	require.Len(t, summary.RecentUsers, 5)
	assert.Equal(t, "u7", summary.RecentUsers[0].ID)
	assert.Equal(t, "User 7", summary.RecentUsers[0].Name)
	assert.Equal(t, "u3", summary.RecentUsers[4].ID)

	require.Len(t, summary.RecentProducts, 2)
	assert.Equal(t, "p2", summary.RecentProducts[0].ID)
	assert.Equal(t, "5028.63", summary.RecentProducts[0].MakingCharges)
	assert.Equal(t, "1575.00", summary.RecentProducts[1].MakingCharges)
}

func TestAppRefreshReportsFailure(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("GET /admin/list-users", func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusUnauthorized, "Unauthorized")
	})
	b.handle("GET /admin/list-products", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Product{{ID: "p1"}})
	})

	app, err := NewApp(context.Background(), testLimits, b.client, b.tokens, nil, nil, zerolog.Nop())
	require.NoError(t, err)
	require.Error(t, app.Refresh(context.Background()))

	summary := app.Summary()
	assert.Equal(t, "Unauthorized", summary.Error)
	assert.Equal(t, 1, summary.Stats.TotalProducts)
}

func TestAppRefreshKeepsStatusFilter(t *testing.T) {
	b := newFakeBackend(t)
	var queries []string
	b.handle("GET /admin/list-users", func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("status"))
		writeData(w, []models.User{{ID: "u1", Status: models.UserStatusPending}})
	})
	b.handle("GET /admin/list-products", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Product{})
	})

	app, err := NewApp(context.Background(), testLimits, b.client, b.tokens, nil, nil, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, app.Users.FetchAll(context.Background(), models.UserStatusPending))
	require.NoError(t, app.Refresh(context.Background()))

	assert.Equal(t, []string{"pending", "pending"}, queries)
	assert.Equal(t, models.UserStatusPending, app.Users.State().StatusFilter)
}
