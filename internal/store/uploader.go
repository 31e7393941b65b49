package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/ids"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/media/sniffer"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

// ImageUploader turns one already validated image into one or more URLs the
// backend will accept in a product's images.
type ImageUploader interface {
	Upload(ctx context.Context, file models.ImageFile, detected sniffer.Result) ([]string, error)
}

// APIUploader sends the file to the backend's asset endpoint.
type APIUploader struct {
	api *apiclient.Client
}

func NewAPIUploader(api *apiclient.Client) *APIUploader {
	return &APIUploader{api: api}
}

// assetURLs is the data of an asset upload: one URL string or an array of
// URL strings. Anything else is rejected.
type assetURLs []string

func (a *assetURLs) UnmarshalJSON(raw []byte) error {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one == "" {
			return errors.New("empty url")
		}
		*a = assetURLs{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return fmt.Errorf("want url or array of urls: %w", err)
	}
	*a = many
	return nil
}

// Upload requires data to be a URL or a non-empty array of URLs.
func (u *APIUploader) Upload(ctx context.Context, file models.ImageFile, detected sniffer.Result) ([]string, error) {
	form := &apiclient.Multipart{}
	form.AddFile(apiclient.FilePart{
		Field:       "image",
		Filename:    file.Name,
		ContentType: detected.MIME,
		Data:        file.Data,
	})

	var urls assetURLs
	if err := u.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: apiclient.PathUploadAssets, Form: form}, &urls); err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, &apiclient.TransportError{Op: "upload", Err: fmt.Errorf("%w: no urls returned", apiclient.ErrUnexpectedResponse)}
	}
	return []string(urls), nil
}

type objectPutter interface {
	Put(ctx context.Context, objectKey string, data []byte, contentType string) (string, error)
}

// ObjectStoreUploader writes images straight into the bucket the storefront
// serves from.
type ObjectStoreUploader struct {
	store objectPutter
	now   func() time.Time
}

func NewObjectStoreUploader(store objectPutter) *ObjectStoreUploader {
	return &ObjectStoreUploader{store: store, now: time.Now}
}

func (u *ObjectStoreUploader) Upload(ctx context.Context, file models.ImageFile, detected sniffer.Result) ([]string, error) {
	key := ObjectKey(u.now(), detected)
	url, err := u.store.Put(ctx, key, file.Data, detected.MIME)
	if err != nil {
		return nil, fmt.Errorf("put %s: %w", key, err)
	}
	return []string{url}, nil
}

// ObjectKey is products/YYYY/MM/DD/<ksuid>.<ext>.
func ObjectKey(at time.Time, detected sniffer.Result) string {
	return path.Join("products", at.UTC().Format("2006/01/02"), ids.New()+"."+detected.Ext())
}
