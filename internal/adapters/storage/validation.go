package storage

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrFileSize               = errors.New("invalid file size")
)

// AllowedImageTypes defines the allowed MIME types for property images.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// NormalizeContentType strips parameters like charset and lower-cases.
func NormalizeContentType(contentType string) string {
	normalized := strings.Split(contentType, ";")[0]
	return strings.TrimSpace(strings.ToLower(normalized))
}

// ValidateImageContentType checks the declared type against the allow-list.
func ValidateImageContentType(contentType string) error {
	if !AllowedImageTypes[NormalizeContentType(contentType)] {
		return fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return nil
}

// SniffImageContentType detects the type from the first bytes of the file and
// rejects content that is not an allowed image whatever the client declared.
func SniffImageContentType(head []byte) (string, error) {
	detected := NormalizeContentType(http.DetectContentType(head))
	if err := ValidateImageContentType(detected); err != nil {
		return "", err
	}
	return detected, nil
}

// ValidateFileSize checks if the file size is within limits.
func ValidateFileSize(sizeBytes, maxFileSize int64) error {
	if sizeBytes <= 0 {
		return fmt.Errorf("%w: file is empty", ErrFileSize)
	}
	if sizeBytes > maxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds maximum allowed size of %d bytes", ErrFileSize, sizeBytes, maxFileSize)
	}
	return nil
}
