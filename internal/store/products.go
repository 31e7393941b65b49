package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/media/sniffer"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

var ErrTooManyImages = errors.New("too many product images")

type ProductState struct {
	CollectionState[models.Product]
	UploadedImages []string `json:"uploadedImages"`
	UploadLoading  bool     `json:"uploadLoading"`
}

// Products caches the catalog. Images are uploaded one at a time ahead of
// the submit and referenced by URL in the create or update payload.
type Products struct {
	c         *collection[models.Product]
	api       *apiclient.Client
	uploader  ImageUploader
	maxImage  int64
	maxImages int

	uploaded      []string
	uploadLoading bool
}

func NewProducts(api *apiclient.Client, uploader ImageUploader, maxImageBytes int64, maxImages int, log zerolog.Logger) *Products {
	if maxImages <= 0 {
		maxImages = 5
	}
	return &Products{
		c:         newCollection[models.Product]("products", log),
		api:       api,
		uploader:  uploader,
		maxImage:  maxImageBytes,
		maxImages: maxImages,
		uploaded:  []string{},
	}
}

func (p *Products) State() ProductState {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	uploaded := make([]string, len(p.uploaded))
	copy(uploaded, p.uploaded)
	return ProductState{
		CollectionState: p.c.snapshot(),
		UploadedImages:  uploaded,
		UploadLoading:   p.uploadLoading,
	}
}

func (p *Products) FetchAll(ctx context.Context) error {
	return p.c.fetchAll(ctx, "Failed to fetch products", func(ctx context.Context) ([]models.Product, error) {
		var products []models.Product
		err := p.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: apiclient.PathListProducts}, &products)
		return products, err
	})
}

// UploadImage validates file, uploads it and appends the resulting URLs to
// the pending list. A rejected file leaves the store untouched.
func (p *Products) UploadImage(ctx context.Context, file models.ImageFile) ([]string, error) {
	detected, err := sniffer.Validate(file, p.maxImage)
	if err != nil {
		return nil, err
	}

	// Current images may still be dropped before submit, so only the pending
	// list is capped here. payload enforces the combined limit.
	p.c.mu.Lock()
	if len(p.uploaded) >= p.maxImages {
		p.c.mu.Unlock()
		return nil, &sniffer.ValidationError{File: file.Name, Err: fmt.Errorf("%w: max %d", ErrTooManyImages, p.maxImages)}
	}
	p.uploadLoading = true
	p.c.flags.Error = ""
	p.c.mu.Unlock()

	urls, err := p.uploader.Upload(ctx, file, detected)
	if err != nil {
		msg := apiclient.Message(err, "Failed to upload image")
		p.c.mu.Lock()
		p.uploadLoading = false
		p.c.flags.Error = msg
		p.c.mu.Unlock()
		p.c.log.Warn().Err(err).Str("op", "upload_image").Str("file", file.Name).Msg(msg)
		return nil, err
	}

	p.c.mu.Lock()
	p.uploaded = append(p.uploaded, urls...)
	p.uploadLoading = false
	p.c.mu.Unlock()
	p.c.log.Debug().Strs("urls", urls).Msg("image uploaded")
	return urls, nil
}

func (p *Products) ClearUploadedImages() {
	p.c.mu.Lock()
	p.uploaded = []string{}
	p.c.mu.Unlock()
}

func (p *Products) Create(ctx context.Context, input models.ProductInput) (models.Product, error) {
	payload, err := p.payload(input)
	if err != nil {
		return models.Product{}, err
	}
	product, err := p.c.create(ctx, "Failed to create product", func(ctx context.Context) (models.Product, error) {
		var product models.Product
		err := p.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: apiclient.PathCreateProduct, JSON: payload}, &product)
		return product, err
	})
	if err == nil {
		p.ClearUploadedImages()
	}
	return product, err
}

func (p *Products) Update(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	payload, err := p.payload(input)
	if err != nil {
		return models.Product{}, err
	}
	product, err := p.c.update(ctx, "Failed to update product", true, func(ctx context.Context) (models.Product, error) {
		var product models.Product
		err := p.api.Do(ctx, apiclient.Request{Method: http.MethodPatch, Path: apiclient.PathUpdateProduct(id), JSON: payload}, &product)
		return product, err
	})
	if err == nil {
		p.ClearUploadedImages()
	}
	return product, err
}

func (p *Products) Remove(ctx context.Context, id string) error {
	return p.c.remove(ctx, id, "Failed to delete product", func(ctx context.Context) error {
		return p.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: apiclient.PathDeleteProduct(id)}, nil)
	})
}

// payload merges the retained images with the pending uploads.
func (p *Products) payload(input models.ProductInput) (models.ProductInput, error) {
	p.c.mu.Lock()
	retained := input.Images
	if retained == nil && p.c.current != nil {
		retained = p.c.current.Images
	}
	images := MergeImages(retained, p.uploaded)
	p.c.mu.Unlock()

	if len(images) > p.maxImages {
		return input, &sniffer.ValidationError{
			File: "images",
			Err:  fmt.Errorf("%w: %d, max %d", ErrTooManyImages, len(images), p.maxImages),
		}
	}
	input.Images = images
	return input, nil
}

// MergeImages concatenates the lists keeping the first occurrence of every URL.
func MergeImages(lists ...[]string) []string {
	seen := make(map[string]struct{})
	merged := []string{}
	for _, list := range lists {
		for _, u := range list {
			if u == "" {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			merged = append(merged, u)
		}
	}
	return merged
}

func (p *Products) SetCurrent(product models.Product) { p.c.setCurrent(product) }
func (p *Products) ClearCurrent()                     { p.c.clearCurrent() }
func (p *Products) ClearError()                       { p.c.clearError() }
func (p *Products) ClearSuccess()                     { p.c.clearSuccess() }
