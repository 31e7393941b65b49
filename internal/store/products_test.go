package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/media/sniffer"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

func newProducts(b *fakeBackend) *Products {
	return NewProducts(b.client, NewAPIUploader(b.client), 10<<20, 5, zerolog.Nop())
}

func TestUploadImageAppendsURLs(t *testing.T) {
	b := newFakeBackend(t)
	n := 0
	b.handle("POST /admin/upload/assets", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Len(t, r.MultipartForm.File["image"], 1)
		n++
		writeData(w, []string{"https://cdn.roop.in/p" + string(rune('0'+n)) + ".png"})
	})

	products := newProducts(b)
	_, err := products.UploadImage(context.Background(), pngFile("a.png"))
	require.NoError(t, err)
	urls, err := products.UploadImage(context.Background(), pngFile("b.png"))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn.roop.in/p2.png"}, urls)
	state := products.State()
	assert.Equal(t, []string{"https://cdn.roop.in/p1.png", "https://cdn.roop.in/p2.png"}, state.UploadedImages)
	assert.False(t, state.UploadLoading)
	assert.Empty(t, state.Items)

	products.ClearUploadedImages()
	assert.Empty(t, products.State().UploadedImages)
}

func TestUploadImageRejectsPlainText(t *testing.T) {
	b := newFakeBackend(t)
	products := newProducts(b)
	before := products.State()

	_, err := products.UploadImage(context.Background(), models.ImageFile{
		Name:        "notes.txt",
		ContentType: "text/plain",
		Data:        []byte("not an image"),
	})
	require.ErrorIs(t, err, sniffer.ErrTypeNotAllowed)
	assert.Equal(t, int32(0), b.calls.Load())
	assert.Equal(t, before, products.State())
}

func TestUploadImageRejectsDisguisedFile(t *testing.T) {
	b := newFakeBackend(t)
	products := newProducts(b)

	_, err := products.UploadImage(context.Background(), models.ImageFile{
		Name:        "fake.png",
		ContentType: "image/png",
		Data:        []byte("<html>definitely not a png</html>"),
	})
	require.ErrorIs(t, err, sniffer.ErrContentMismatch)
	assert.Equal(t, int32(0), b.calls.Load())
}

func TestUploadImageAcceptsSingleURL(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("POST /admin/upload/assets", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, "https://cdn.roop.in/a.png")
	})

	products := newProducts(b)
	urls, err := products.UploadImage(context.Background(), pngFile("a.png"))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn.roop.in/a.png"}, urls)
	assert.Equal(t, []string{"https://cdn.roop.in/a.png"}, products.State().UploadedImages)
}

func TestUploadImageRejectsUnexpectedData(t *testing.T) {
	cases := map[string]string{
		"object":       `{"success":true,"data":{"images":["https://cdn.roop.in/a.png"]}}`,
		"empty":        `{"success":true,"data":[]}`,
		"null":         `{"success":true,"data":null}`,
		"empty string": `{"success":true,"data":""}`,
		"number":       `{"success":true,"data":42}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			b := newFakeBackend(t)
			b.handle("POST /admin/upload/assets", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			products := newProducts(b)
			_, err := products.UploadImage(context.Background(), pngFile("a.png"))
			require.ErrorIs(t, err, apiclient.ErrUnexpectedResponse)

			state := products.State()
			assert.Empty(t, state.UploadedImages)
			assert.False(t, state.UploadLoading)
			assert.NotEmpty(t, state.Error)
		})
	}
}

func TestUploadImageStopsAtLimit(t *testing.T) {
	b := newFakeBackend(t)
	n := 0
	b.handle("POST /admin/upload/assets", func(w http.ResponseWriter, r *http.Request) {
		n++
		writeData(w, []string{"u" + string(rune('0'+n))})
	})

	products := NewProducts(b.client, NewAPIUploader(b.client), 10<<20, 2, zerolog.Nop())
	for range 2 {
		_, err := products.UploadImage(context.Background(), pngFile("a.png"))
		require.NoError(t, err)
	}

	_, err := products.UploadImage(context.Background(), pngFile("c.png"))
	require.ErrorIs(t, err, ErrTooManyImages)
	assert.Equal(t, int32(2), b.calls.Load())
	assert.Equal(t, []string{"u1", "u2"}, products.State().UploadedImages)
}

func TestUploadReplacementAfterTrimmingImages(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("POST /admin/upload/assets", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, "6")
	})
	var sent models.ProductInput
	b.handle("PATCH /admin/product/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		writeData(w, models.Product{ID: r.PathValue("id"), Images: sent.Images})
	})

	products := newProducts(b)
	products.SetCurrent(models.Product{ID: "p1", Images: []string{"1", "2", "3", "4", "5"}})

	_, err := products.UploadImage(context.Background(), pngFile("a.png"))
	require.NoError(t, err)

	// Keeping every current image would make six.
	_, err = products.Update(context.Background(), "p1", models.ProductInput{Name: "Set"})
	require.ErrorIs(t, err, ErrTooManyImages)

	_, err = products.Update(context.Background(), "p1", models.ProductInput{Name: "Set", Images: []string{"1", "2", "3", "4"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "6"}, sent.Images)
}

func TestCreateProductMergesUploadedImages(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("POST /admin/upload/assets", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []string{"https://cdn.roop.in/new.png"})
	})
	var sent models.ProductInput
	b.handle("POST /admin/create-product", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		writeData(w, models.Product{ID: "p9", Name: sent.Name, SKU: sent.SKU, Images: sent.Images})
	})

	products := newProducts(b)
	_, err := products.UploadImage(context.Background(), pngFile("a.png"))
	require.NoError(t, err)

	created, err := products.Create(context.Background(), models.ProductInput{
		Name:   "Kundan Necklace",
		SKU:    "RJ-N-001",
		Images: []string{"https://cdn.roop.in/old.png", "https://cdn.roop.in/new.png"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn.roop.in/old.png", "https://cdn.roop.in/new.png"}, sent.Images)
	state := products.State()
	assert.Equal(t, []models.Product{created}, state.Items)
	assert.Empty(t, state.UploadedImages)
	assert.True(t, state.Success)
}

func TestUpdateProductKeepsCurrentImages(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("GET /admin/list-products", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Product{{ID: "p1", Name: "Jhumka", Images: []string{"a"}}, {ID: "p2", Name: "Kada"}})
	})
	b.handle("POST /admin/upload/assets", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []string{"b"})
	})
	var sent models.ProductInput
	b.handle("PATCH /admin/product/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		writeData(w, models.Product{ID: r.PathValue("id"), Name: sent.Name, Images: sent.Images})
	})

	products := newProducts(b)
	ctx := context.Background()
	require.NoError(t, products.FetchAll(ctx))
	products.SetCurrent(products.State().Items[0])
	_, err := products.UploadImage(ctx, pngFile("b.png"))
	require.NoError(t, err)

	updated, err := products.Update(ctx, "p1", models.ProductInput{Name: "Gold Jhumka"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, sent.Images)
	state := products.State()
	assert.Nil(t, state.Current)
	assert.Equal(t, updated, state.Items[0])
	assert.Equal(t, "Kada", state.Items[1].Name)
	assert.Empty(t, state.UploadedImages)
}

func TestCreateProductRejectsTooManyImages(t *testing.T) {
	b := newFakeBackend(t)
	products := newProducts(b)

	_, err := products.Create(context.Background(), models.ProductInput{
		Name:   "Set",
		Images: []string{"1", "2", "3", "4", "5", "6"},
	})
	require.ErrorIs(t, err, ErrTooManyImages)
	assert.Equal(t, int32(0), b.calls.Load())
	assert.Equal(t, Flags{}, products.State().Flags)
}

func TestFailedCreateKeepsUploadedImages(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("POST /admin/upload/assets", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []string{"u1"})
	})
	b.handle("POST /admin/create-product", func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusConflict, "SKU already exists")
	})

	products := newProducts(b)
	_, err := products.UploadImage(context.Background(), pngFile("a.png"))
	require.NoError(t, err)

	_, err = products.Create(context.Background(), models.ProductInput{Name: "Ring", SKU: "DUP"})
	require.Error(t, err)

	state := products.State()
	assert.Equal(t, "SKU already exists", state.Error)
	assert.False(t, state.Success)
	assert.Equal(t, []string{"u1"}, state.UploadedImages)
}

func TestRemoveProduct(t *testing.T) {
	b := newFakeBackend(t)
	b.handle("GET /admin/list-products", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, []models.Product{{ID: "p1"}, {ID: "p2"}})
	})
	b.handle("DELETE /admin/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, r.PathValue("id"))
	})

	products := newProducts(b)
	require.NoError(t, products.FetchAll(context.Background()))
	require.NoError(t, products.Remove(context.Background(), "p1"))
	require.NoError(t, products.Remove(context.Background(), "p1"))

	assert.Equal(t, []models.Product{{ID: "p2"}}, products.State().Items)
}

func TestMergeImages(t *testing.T) {
	assert.Equal(t, []string{}, MergeImages(nil, nil))
	assert.Equal(t, []string{"a", "b", "c"}, MergeImages([]string{"a", "", "b"}, []string{"b", "c", "a"}))
}

type fakePutter struct {
	key, contentType string
	err              error
}

func (f *fakePutter) Put(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	f.key, f.contentType = key, contentType
	if f.err != nil {
		return "", f.err
	}
	return "https://media.roop.in/" + key, nil
}

func TestObjectStoreUploader(t *testing.T) {
	putter := &fakePutter{}
	uploader := NewObjectStoreUploader(putter)
	uploader.now = func() time.Time { return time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC) }

	urls, err := uploader.Upload(context.Background(), pngFile("a.png"), sniffer.Result{Type: sniffer.TypePNG, MIME: "image/png"})
	require.NoError(t, err)

	require.Len(t, urls, 1)
	assert.True(t, strings.HasPrefix(putter.key, "products/2024/03/09/"))
	assert.True(t, strings.HasSuffix(putter.key, ".png"))
	assert.Equal(t, "image/png", putter.contentType)
	assert.Equal(t, "https://media.roop.in/"+putter.key, urls[0])

	putter.err = errors.New("bucket gone")
	_, err = uploader.Upload(context.Background(), pngFile("a.png"), sniffer.Result{Type: sniffer.TypeJPEG, MIME: "image/jpeg"})
	assert.ErrorContains(t, err, "bucket gone")
	assert.True(t, strings.HasSuffix(putter.key, ".jpg"))
}
