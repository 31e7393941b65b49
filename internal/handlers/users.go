package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

type statusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=pending approved rejected"`
}

type blockRequest struct {
	IsBlocked *bool `json:"isBlocked" binding:"required"`
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	status := models.UserStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}
	if err := h.app.Users.FetchAll(c.Request.Context(), status); err != nil {
		fail(c, err, h.app.Users.State())
		return
	}
	respond(c, h.app.Users.State())
}

func (h HandlerSet) GetUser(c *gin.Context) {
	if err := h.app.Users.FetchOne(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, h.app.Users.State())
		return
	}
	respond(c, h.app.Users.State())
}

func (h HandlerSet) UpdateUserStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.app.Users.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		fail(c, err, h.app.Users.State())
		return
	}
	h.flash("users", h.app.Users.ClearSuccess)
	respond(c, h.app.Users.State())
}

func (h HandlerSet) BlockUser(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.app.Users.SetBlocked(c.Request.Context(), c.Param("id"), *req.IsBlocked); err != nil {
		fail(c, err, h.app.Users.State())
		return
	}
	h.flash("users", h.app.Users.ClearSuccess)
	respond(c, h.app.Users.State())
}

func (h HandlerSet) SelectUser(c *gin.Context) {
	state := h.app.Users.State()
	for _, u := range state.Items {
		if u.ID == c.Param("id") {
			h.app.Users.SetCurrent(u)
			respond(c, h.app.Users.State())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not_cached"})
}

func (h HandlerSet) ClearUser(c *gin.Context) {
	h.app.Users.ClearCurrent()
	respond(c, h.app.Users.State())
}

func (h HandlerSet) ClearUsersError(c *gin.Context) {
	h.app.Users.ClearError()
	respond(c, h.app.Users.State())
}
