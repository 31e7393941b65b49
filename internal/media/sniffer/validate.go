package sniffer

import (
	"errors"
	"fmt"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrTypeNotAllowed  = errors.New("file type not allowed")
	ErrFileTooLarge    = errors.New("file too large")
	ErrContentMismatch = errors.New("content does not match declared type")
)

// AllowedTypes are the declared types accepted for catalog images.
var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

// ValidationError rejects a file before any network call is made.
type ValidationError struct {
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks the declared type, the size limit and that the bytes
// really are the declared image format.
func Validate(file models.ImageFile, maxBytes int64) (Result, error) {
	fail := func(err error) (Result, error) {
		return Result{}, &ValidationError{File: file.Name, Err: err}
	}

	declared := NormalizeMIME(file.ContentType)
	if !allowed(file.ContentType) {
		return fail(fmt.Errorf("%w: %q", ErrTypeNotAllowed, file.ContentType))
	}
	if file.Size() == 0 {
		return fail(ErrEmptyFile)
	}
	if maxBytes > 0 && file.Size() > maxBytes {
		return fail(fmt.Errorf("%w: %d bytes, max %d", ErrFileTooLarge, file.Size(), maxBytes))
	}

	head := file.Data
	if len(head) > 512 {
		head = head[:512]
	}
	result, err := DetectHead(head)
	if err != nil {
		return fail(ErrContentMismatch)
	}
	if result.MIME != declared {
		return fail(fmt.Errorf("%w: declared %s, actual %s", ErrContentMismatch, declared, result.MIME))
	}
	return result, nil
}

func allowed(contentType string) bool {
	ct := NormalizeMIME(contentType)
	for _, t := range AllowedTypes {
		if NormalizeMIME(t) == ct {
			return true
		}
	}
	return false
}
