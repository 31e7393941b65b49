package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
)

type healthResponse struct {
	Status        string      `json:"status"`
	Environment   string      `json:"environment"`
	Backend       string      `json:"backend"`
	SessionPhase  store.Phase `json:"sessionPhase"`
	Authenticated bool        `json:"authenticated"`
}

func (h HandlerSet) Health(c *gin.Context) {
	session := h.app.Session.State()
	c.JSON(http.StatusOK, healthResponse{
		Status:        "ok",
		Environment:   h.cfg.Environment,
		Backend:       h.cfg.API.BaseURL,
		SessionPhase:  session.Phase,
		Authenticated: session.IsAuthenticated,
	})
}
