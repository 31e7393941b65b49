package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password" binding:"required,min=6"`
}

func (h HandlerSet) SessionState(c *gin.Context) {
	respond(c, h.app.Session.State())
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.app.Session.Login(c.Request.Context(), models.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		fail(c, err, h.app.Session.State())
		return
	}
	respond(c, h.app.Session.State())
}

func (h HandlerSet) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.app.Session.Signup(c.Request.Context(), models.Registration{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	})
	if err != nil {
		fail(c, err, h.app.Session.State())
		return
	}
	respond(c, h.app.Session.State())
}

func (h HandlerSet) Logout(c *gin.Context) {
	if err := h.app.Session.Logout(c.Request.Context()); err != nil {
		fail(c, err, h.app.Session.State())
		return
	}
	respond(c, h.app.Session.State())
}

// Profile re-validates the held token against the backend.
func (h HandlerSet) Profile(c *gin.Context) {
	if err := h.app.Session.FetchProfile(c.Request.Context()); err != nil {
		fail(c, err, h.app.Session.State())
		return
	}
	respond(c, h.app.Session.State())
}

type claimsResponse struct {
	AdminID   string `json:"adminId,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	ExpiresIn string `json:"expiresIn,omitempty"`
}

func (h HandlerSet) Claims(c *gin.Context) {
	claims, err := h.app.Session.Claims()
	switch {
	case errors.Is(err, store.ErrMissingToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "opaque_token", "message": err.Error()})
		return
	}

	resp := claimsResponse{AdminID: claims.AdminID, Email: claims.Email, Role: claims.Role}
	if d, ok := claims.ExpiresIn(time.Now()); ok {
		resp.ExpiresIn = d.Round(time.Second).String()
	}
	c.JSON(http.StatusOK, gin.H{"claims": resp})
}

func (h HandlerSet) ClearSessionError(c *gin.Context) {
	h.app.Session.ClearError()
	respond(c, h.app.Session.State())
}
