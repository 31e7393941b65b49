package handlers

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/config"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/events"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/middleware"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
)

// HandlerSet exposes the admin stores to a browser UI. Every intent answers
// with the snapshot of the store it touched.
type HandlerSet struct {
	log zerolog.Logger
	cfg *config.AppConfig
	app *store.App

	flashes *flasher
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, app *store.App) HandlerSet {
	h := HandlerSet{log: log, cfg: cfg, app: app, flashes: &flasher{timers: make(map[string]*flashTimer)}}
	h.watchSession()
	return h
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	session := router.Group("/session")
	session.GET("", h.SessionState)
	session.POST("/login", h.Login)
	session.POST("/signup", h.Signup)
	session.POST("/logout", h.Logout)
	session.POST("/profile", h.Profile)
	session.GET("/claims", h.Claims)
	session.DELETE("/error", h.ClearSessionError)

	protected := router.Group("")
	protected.Use(middleware.RequireSession(h.app.Session))

	users := protected.Group("/users")
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id/status", h.UpdateUserStatus)
	users.PATCH("/:id/block", h.BlockUser)
	users.PUT("/current/:id", h.SelectUser)
	users.DELETE("/current", h.ClearUser)
	users.DELETE("/error", h.ClearUsersError)

	categories := protected.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.PATCH("/:id", h.UpdateCategory)
	categories.DELETE("/:id", h.DeleteCategory)
	categories.PUT("/current/:id", h.SelectCategory)
	categories.DELETE("/current", h.ClearCategory)
	categories.DELETE("/error", h.ClearCategoriesError)

	products := protected.Group("/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.PATCH("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)
	products.POST("/images", h.UploadProductImage)
	products.DELETE("/images", h.ClearProductImages)
	products.PUT("/current/:id", h.SelectProduct)
	products.DELETE("/current", h.ClearProduct)
	products.DELETE("/error", h.ClearProductsError)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("", h.Dashboard)
	dashboard.POST("/refresh", h.RefreshDashboard)
}

// flasher holds one pending clear per store. A newer mutation of the same
// store restarts its window.
type flasher struct {
	mu     sync.Mutex
	timers map[string]*flashTimer
}

type flashTimer struct {
	timer *time.Timer
	gen   uint64
}

// flash clears a success flag once the UI had time to show it.
func (h HandlerSet) flash(name string, clear func()) {
	d := h.cfg.Dashboard.FlashDuration
	if d <= 0 {
		return
	}
	f := h.flashes
	f.mu.Lock()
	defer f.mu.Unlock()

	ft, ok := f.timers[name]
	if !ok {
		ft = &flashTimer{}
		f.timers[name] = ft
	} else {
		ft.timer.Stop()
	}
	ft.gen++
	gen := ft.gen
	ft.timer = time.AfterFunc(d, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		// A timer that already fired when Stop was called must not clear
		// the newer flag.
		if ft.gen == gen {
			clear()
		}
	})
}

func (h HandlerSet) watchSession() {
	if h.app.Bus == nil {
		return
	}
	_, _ = h.app.Bus.Subscribe(events.TopicSessionInvalidated, func(ev events.SessionEvent) {
		h.log.Warn().Bool("expired", ev.Expired).Str("reason", ev.Reason).Msg("admin session invalidated")
	})
	_, _ = h.app.Bus.Subscribe(events.TopicSessionLogout, func(events.SessionEvent) {
		h.log.Info().Msg("admin logged out")
	})
}
