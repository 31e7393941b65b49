package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

// readImageFile declares the type from the extension unless contentType is
// given; the stores check the bytes against it.
func readImageFile(path, contentType string) (models.ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("read image: %w", err)
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
	}
	return models.ImageFile{Name: filepath.Base(path), ContentType: contentType, Data: data}, nil
}
