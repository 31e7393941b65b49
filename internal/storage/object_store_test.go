package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/config"
)

func TestPublicURL(t *testing.T) {
	cfg := config.StorageConfig{Endpoint: "minio.local:9000", Bucket: "imgs"}
	assert.Equal(t, "http://minio.local:9000/imgs/products/a.png", PublicURL(cfg, "products/a.png"))

	cfg.UseSSL = true
	assert.Equal(t, "https://minio.local:9000/imgs/products/a.png", PublicURL(cfg, "products/a.png"))

	cfg.Endpoint = "https://s3.example.com/"
	assert.Equal(t, "https://s3.example.com/imgs/k", PublicURL(cfg, "k"))

	cfg.PublicBaseURL = "https://cdn.roop.example/"
	assert.Equal(t, "https://cdn.roop.example/k", PublicURL(cfg, "k"))
}

func TestNewObjectStoreParsesSchemeEndpoint(t *testing.T) {
	store, err := NewObjectStore(config.StorageConfig{
		Endpoint:  "https://s3.example.com",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "imgs",
		Region:    "us-east-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3.example.com", store.client.EndpointURL().Host)
	assert.Equal(t, "https", store.client.EndpointURL().Scheme)
}
