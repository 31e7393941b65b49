package store

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/config"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/events"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/tokenstore"
)

const recentLimit = 5

// App groups the four stores. Stores never call each other; App only fans
// requests out and reads snapshots back.
type App struct {
	Session    *Session
	Users      *Users
	Categories *Categories
	Products   *Products
	Bus        *events.Bus
}

func NewApp(ctx context.Context, limits config.UploadConfig, api *apiclient.Client, tokens tokenstore.Store, uploader ImageUploader, bus *events.Bus, log zerolog.Logger) (*App, error) {
	session, err := NewSession(ctx, api, tokens, bus, log)
	if err != nil {
		return nil, err
	}
	if uploader == nil {
		uploader = NewAPIUploader(api)
	}
	return &App{
		Session:    session,
		Users:      NewUsers(api, log),
		Categories: NewCategories(api, limits.CategoryMaxBytes, log),
		Products:   NewProducts(api, uploader, limits.ProductMaxBytes, limits.MaxProductImages, log),
		Bus:        bus,
	}, nil
}

type Summary struct {
	Stats          UserStatsView `json:"stats"`
	RecentUsers    []RecentUser  `json:"recentUsers"`
	RecentProducts []RecentItem  `json:"recentProducts"`
	Loading        bool          `json:"loading"`
	Error          string        `json:"error,omitempty"`
}

type UserStatsView struct {
	models.UserStats
	TotalProducts int `json:"totalProducts"`
}

type RecentUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

type RecentItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	MakingCharges string `json:"makingCharges"`
}

// Summary is the dashboard view: the newest entries are the last ones the
// backend listed.
func (a *App) Summary() Summary {
	users := a.Users.State()
	products := a.Products.State()

	out := Summary{
		Stats: UserStatsView{
			UserStats:     users.Stats,
			TotalProducts: len(products.Items),
		},
		RecentUsers:    []RecentUser{},
		RecentProducts: []RecentItem{},
		Loading:        users.Loading || products.Loading,
	}
	if users.Error != "" {
		out.Error = users.Error
	} else if products.Error != "" {
		out.Error = products.Error
	}

	for i := len(users.Items) - 1; i >= 0 && len(out.RecentUsers) < recentLimit; i-- {
		u := users.Items[i]
		out.RecentUsers = append(out.RecentUsers, RecentUser{ID: u.ID, Name: u.FullName(), Email: u.Email, Status: string(u.Status)})
	}
	for i := len(products.Items) - 1; i >= 0 && len(out.RecentProducts) < recentLimit; i-- {
		p := products.Items[i]
		out.RecentProducts = append(out.RecentProducts, RecentItem{ID: p.ID, Name: p.Name, SKU: p.SKU, MakingCharges: p.MakingCharges().StringFixed(2)})
	}
	return out
}

// Refresh re-fetches users and products concurrently. Each store records
// its own failure; the first error is returned. Users keep the active
// status filter.
func (a *App) Refresh(ctx context.Context) error {
	filter := a.Users.State().StatusFilter
	var g errgroup.Group
	g.Go(func() error { return a.Users.FetchAll(ctx, filter) })
	g.Go(func() error { return a.Products.FetchAll(ctx) })
	return g.Wait()
}
