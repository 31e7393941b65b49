package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/media/sniffer"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

var errFileRequired = errors.New("image file required")

// readImage loads a multipart file into memory, reading at most one byte
// past maxBytes so oversize files still fail validation as too large.
func readImage(fh *multipart.FileHeader, maxBytes int64) (models.ImageFile, error) {
	if fh == nil {
		return models.ImageFile{}, errFileRequired
	}
	f, err := fh.Open()
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return models.ImageFile{
		Name:        fh.Filename,
		ContentType: sniffer.MimeTypeFromHTTP(http.Header(fh.Header)),
		Data:        data,
	}, nil
}
