package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
)

type categoryRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Description string `json:"description" form:"description"`
	IsActive    bool   `json:"isActive" form:"isActive"`
}

func (h HandlerSet) ListCategories(c *gin.Context) {
	if err := h.app.Categories.FetchAll(c.Request.Context()); err != nil {
		fail(c, err, h.app.Categories.State())
		return
	}
	respond(c, h.app.Categories.State())
}

func (h HandlerSet) CreateCategory(c *gin.Context) {
	payload, err := h.bindCategory(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.app.Categories.Create(c.Request.Context(), payload); err != nil {
		fail(c, err, h.app.Categories.State())
		return
	}
	h.flash("categories", h.app.Categories.ClearSuccess)
	c.JSON(http.StatusCreated, gin.H{"state": h.app.Categories.State()})
}

func (h HandlerSet) UpdateCategory(c *gin.Context) {
	payload, err := h.bindCategory(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.app.Categories.Update(c.Request.Context(), c.Param("id"), payload); err != nil {
		fail(c, err, h.app.Categories.State())
		return
	}
	h.flash("categories", h.app.Categories.ClearSuccess)
	respond(c, h.app.Categories.State())
}

func (h HandlerSet) DeleteCategory(c *gin.Context) {
	if err := h.app.Categories.Remove(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, h.app.Categories.State())
		return
	}
	h.flash("categories", h.app.Categories.ClearSuccess)
	respond(c, h.app.Categories.State())
}

func (h HandlerSet) SelectCategory(c *gin.Context) {
	for _, cat := range h.app.Categories.State().Items {
		if cat.ID == c.Param("id") {
			h.app.Categories.SetCurrent(cat)
			respond(c, h.app.Categories.State())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not_cached"})
}

func (h HandlerSet) ClearCategory(c *gin.Context) {
	h.app.Categories.ClearCurrent()
	respond(c, h.app.Categories.State())
}

func (h HandlerSet) ClearCategoriesError(c *gin.Context) {
	h.app.Categories.ClearError()
	respond(c, h.app.Categories.State())
}

// bindCategory accepts JSON, or a multipart form carrying an optional image.
func (h HandlerSet) bindCategory(c *gin.Context) (store.CategoryPayload, error) {
	var req categoryRequest
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&req); err != nil {
			return store.CategoryPayload{}, err
		}
		return store.CategoryPayload{CategoryInput: models.CategoryInput(req)}, nil
	}

	if err := c.ShouldBind(&req); err != nil {
		return store.CategoryPayload{}, err
	}
	payload := store.CategoryPayload{CategoryInput: models.CategoryInput(req)}

	fh, err := c.FormFile("image")
	if err == http.ErrMissingFile {
		return payload, nil
	}
	if err != nil {
		return store.CategoryPayload{}, err
	}
	image, err := readImage(fh, h.cfg.Upload.CategoryMaxBytes)
	if err != nil {
		return store.CategoryPayload{}, err
	}
	payload.Image = &image
	return payload, nil
}
