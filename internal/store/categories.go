package store

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/media/sniffer"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

// CategoryPayload is a create or update submission. With an Image the
// request goes out as multipart, otherwise as JSON.
type CategoryPayload struct {
	models.CategoryInput
	Image *models.ImageFile
}

type Categories struct {
	c        *collection[models.Category]
	api      *apiclient.Client
	maxImage int64
}

func NewCategories(api *apiclient.Client, maxImageBytes int64, log zerolog.Logger) *Categories {
	return &Categories{
		c:        newCollection[models.Category]("categories", log),
		api:      api,
		maxImage: maxImageBytes,
	}
}

func (s *Categories) State() CollectionState[models.Category] {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()
	return s.c.snapshot()
}

func (s *Categories) FetchAll(ctx context.Context) error {
	return s.c.fetchAll(ctx, "Failed to fetch categories", func(ctx context.Context) ([]models.Category, error) {
		var categories []models.Category
		err := s.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: apiclient.PathListCategories}, &categories)
		return categories, err
	})
}

func (s *Categories) Create(ctx context.Context, payload CategoryPayload) (models.Category, error) {
	req, err := s.request(http.MethodPost, apiclient.PathCreateCategory, payload)
	if err != nil {
		return models.Category{}, err
	}
	return s.c.create(ctx, "Failed to create category", func(ctx context.Context) (models.Category, error) {
		var category models.Category
		err := s.api.Do(ctx, req, &category)
		return category, err
	})
}

func (s *Categories) Update(ctx context.Context, id string, payload CategoryPayload) (models.Category, error) {
	req, err := s.request(http.MethodPatch, apiclient.PathUpdateCategory(id), payload)
	if err != nil {
		return models.Category{}, err
	}
	return s.c.update(ctx, "Failed to update category", true, func(ctx context.Context) (models.Category, error) {
		var category models.Category
		err := s.api.Do(ctx, req, &category)
		return category, err
	})
}

// Remove deletes id. Asking the admin for confirmation is the caller's job.
func (s *Categories) Remove(ctx context.Context, id string) error {
	return s.c.remove(ctx, id, "Failed to delete category", func(ctx context.Context) error {
		return s.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: apiclient.PathDeleteCategory(id)}, nil)
	})
}

// request validates the image before anything reaches the store state.
func (s *Categories) request(method, path string, payload CategoryPayload) (apiclient.Request, error) {
	if payload.Image == nil {
		return apiclient.Request{Method: method, Path: path, JSON: payload.CategoryInput}, nil
	}

	detected, err := sniffer.Validate(*payload.Image, s.maxImage)
	if err != nil {
		return apiclient.Request{}, err
	}

	form := &apiclient.Multipart{}
	form.Add("name", payload.Name)
	form.Add("description", payload.Description)
	form.Add("isActive", strconv.FormatBool(payload.IsActive))
	form.AddFile(apiclient.FilePart{
		Field:       "image",
		Filename:    payload.Image.Name,
		ContentType: detected.MIME,
		Data:        payload.Image.Data,
	})
	return apiclient.Request{Method: method, Path: path, Form: form}, nil
}

func (s *Categories) SetCurrent(category models.Category) { s.c.setCurrent(category) }
func (s *Categories) ClearCurrent()                       { s.c.clearCurrent() }
func (s *Categories) ClearError()                         { s.c.clearError() }
func (s *Categories) ClearSuccess()                       { s.c.clearSuccess() }
