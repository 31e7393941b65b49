package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

type UserState struct {
	CollectionState[models.User]
	Stats        models.UserStats  `json:"stats"`
	StatusFilter models.UserStatus `json:"statusFilter"`
}

// Users caches storefront accounts and their moderation state. Stats are
// recomputed in the same critical section that changes the items.
type Users struct {
	c      *collection[models.User]
	api    *apiclient.Client
	stats  models.UserStats
	filter models.UserStatus
}

func NewUsers(api *apiclient.Client, log zerolog.Logger) *Users {
	u := &Users{
		c:   newCollection[models.User]("users", log),
		api: api,
	}
	u.c.changed = func() {
		u.stats = models.ComputeUserStats(u.c.items)
	}
	return u
}

func (u *Users) State() UserState {
	u.c.mu.Lock()
	defer u.c.mu.Unlock()
	return UserState{
		CollectionState: u.c.snapshot(),
		Stats:           u.stats,
		StatusFilter:    u.filter,
	}
}

// FetchAll loads every user, or only those in status when it is set.
func (u *Users) FetchAll(ctx context.Context, status models.UserStatus) error {
	u.SetStatusFilter(status)
	return u.c.fetchAll(ctx, "Failed to fetch users", func(ctx context.Context) ([]models.User, error) {
		req := apiclient.Request{Method: http.MethodGet, Path: apiclient.PathListUsers}
		if status != "" {
			req.Query = url.Values{"status": {string(status)}}
		}
		var users []models.User
		err := u.api.Do(ctx, req, &users)
		return users, err
	})
}

// FetchOne loads a user from the backend into Current for the detail view.
func (u *Users) FetchOne(ctx context.Context, id string) error {
	return u.c.fetchOne(ctx, "Failed to fetch user", func(ctx context.Context) (models.User, error) {
		var user models.User
		err := u.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: apiclient.PathUser(id)}, &user)
		return user, err
	})
}

func (u *Users) UpdateStatus(ctx context.Context, id string, status models.UserStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid user status %q", status)
	}
	_, err := u.c.update(ctx, "Failed to update user status", false, func(ctx context.Context) (models.User, error) {
		var user models.User
		err := u.api.Do(ctx, apiclient.Request{
			Method: http.MethodPatch,
			Path:   apiclient.PathUserStatus(id),
			JSON:   map[string]models.UserStatus{"status": status},
		}, &user)
		return user, err
	})
	return err
}

func (u *Users) SetBlocked(ctx context.Context, id string, blocked bool) error {
	_, err := u.c.update(ctx, "Failed to update user block status", false, func(ctx context.Context) (models.User, error) {
		var user models.User
		err := u.api.Do(ctx, apiclient.Request{
			Method: http.MethodPatch,
			Path:   apiclient.PathUserBlock(id),
			JSON:   map[string]bool{"isBlocked": blocked},
		}, &user)
		return user, err
	})
	return err
}

func (u *Users) SetStatusFilter(status models.UserStatus) {
	u.c.mu.Lock()
	u.filter = status
	u.c.mu.Unlock()
}

// SetCurrent selects a cached user for editing without a round trip.
func (u *Users) SetCurrent(user models.User) { u.c.setCurrent(user) }
func (u *Users) ClearCurrent()                { u.c.clearCurrent() }
func (u *Users) ClearError()                  { u.c.clearError() }
func (u *Users) ClearSuccess()                { u.c.clearSuccess() }
