package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

type productRequest struct {
	Name                 string   `json:"name" binding:"required"`
	SKU                  string   `json:"sku" binding:"required"`
	Description          string   `json:"description"`
	CategoryID           string   `json:"categoryId"`
	Weight               float64  `json:"weight" binding:"gte=0"`
	Purity               string   `json:"purity"`
	MakingChargesPerGram float64  `json:"makingChargesPerGram" binding:"gte=0"`
	IsActive             bool     `json:"isActive"`
	Images               []string `json:"images"`
}

func (h HandlerSet) ListProducts(c *gin.Context) {
	if err := h.app.Products.FetchAll(c.Request.Context()); err != nil {
		fail(c, err, h.app.Products.State())
		return
	}
	respond(c, h.app.Products.State())
}

func (h HandlerSet) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.app.Products.Create(c.Request.Context(), models.ProductInput(req)); err != nil {
		fail(c, err, h.app.Products.State())
		return
	}
	h.flash("products", h.app.Products.ClearSuccess)
	c.JSON(http.StatusCreated, gin.H{"state": h.app.Products.State()})
}

func (h HandlerSet) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.app.Products.Update(c.Request.Context(), c.Param("id"), models.ProductInput(req)); err != nil {
		fail(c, err, h.app.Products.State())
		return
	}
	h.flash("products", h.app.Products.ClearSuccess)
	respond(c, h.app.Products.State())
}

func (h HandlerSet) DeleteProduct(c *gin.Context) {
	if err := h.app.Products.Remove(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, h.app.Products.State())
		return
	}
	h.flash("products", h.app.Products.ClearSuccess)
	respond(c, h.app.Products.State())
}

// UploadProductImage takes one multipart file under "image" and adds its
// URL to the pending images of the product being composed.
func (h HandlerSet) UploadProductImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, errFileRequired)
		return
	}
	image, err := readImage(fh, h.cfg.Upload.ProductMaxBytes)
	if err != nil {
		badRequest(c, err)
		return
	}

	urls, err := h.app.Products.UploadImage(c.Request.Context(), image)
	if err != nil {
		fail(c, err, h.app.Products.State())
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": urls, "state": h.app.Products.State()})
}

func (h HandlerSet) ClearProductImages(c *gin.Context) {
	h.app.Products.ClearUploadedImages()
	respond(c, h.app.Products.State())
}

func (h HandlerSet) SelectProduct(c *gin.Context) {
	for _, p := range h.app.Products.State().Items {
		if p.ID == c.Param("id") {
			h.app.Products.SetCurrent(p)
			respond(c, h.app.Products.State())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not_cached"})
}

func (h HandlerSet) ClearProduct(c *gin.Context) {
	h.app.Products.ClearCurrent()
	respond(c, h.app.Products.State())
}

func (h HandlerSet) ClearProductsError(c *gin.Context) {
	h.app.Products.ClearError()
	respond(c, h.app.Products.State())
}
