package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard reports what the stores hold; it does not fetch.
func (h HandlerSet) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"summary": h.app.Summary()})
}

func (h HandlerSet) RefreshDashboard(c *gin.Context) {
	if err := h.app.Refresh(c.Request.Context()); err != nil {
		fail(c, err, h.app.Summary())
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": h.app.Summary()})
}
