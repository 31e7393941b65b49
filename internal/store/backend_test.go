package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/tokenstore"
)

var pngData = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 32)...)

// fakeBackend is an httptest server speaking the admin envelope.
type fakeBackend struct {
	mux    *http.ServeMux
	tokens *tokenstore.MemoryStore
	client *apiclient.Client
	calls  atomic.Int32
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		mux:    http.NewServeMux(),
		tokens: tokenstore.NewMemoryStore(),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	b.client = apiclient.New(srv.URL, b.tokens, zerolog.Nop())
	return b
}

func (b *fakeBackend) handle(pattern string, fn http.HandlerFunc) {
	b.mux.HandleFunc(pattern, fn)
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}

func pngFile(name string) models.ImageFile {
	return models.ImageFile{Name: name, ContentType: "image/png", Data: pngData}
}
