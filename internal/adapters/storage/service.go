// Package storage provides the blob store that property images are uploaded to.
package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrCredentials means the store rejected or lacks credentials.
	ErrCredentials = errors.New("storage credentials rejected")
	// ErrTransient covers every other store failure, including timeouts.
	ErrTransient = errors.New("storage temporarily unavailable")
)

// UploadInput describes one object to store.
type UploadInput struct {
	// Folder is the key prefix, e.g. "properties/<property-id>".
	Folder      string
	FileName    string
	ContentType string
	Reader      io.Reader
	Size        int64
}

// Object is a stored blob and its public URL.
type Object struct {
	Key string
	URL string
}

// Uploader stores binary content and returns a stable public URL.
type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (Object, error)
	// Delete removes an object; used to clean up after a failed database write.
	Delete(ctx context.Context, key string) error
	MaxFileSize() int64
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOBucket() string
	GetMinIOPublicBaseURL() string
	GetMinIOMaxFileSize() int64
	IsMinIOEnabled() bool
}
