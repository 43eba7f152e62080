package storage

import (
	"context"
	"fmt"
)

// DisabledUploader is used when no blob store is configured. Every upload
// fails with ErrCredentials so the rest of the API keeps working.
type DisabledUploader struct {
	maxFileSize int64
}

// NewDisabledUploader returns an uploader that rejects every call.
func NewDisabledUploader(maxFileSize int64) *DisabledUploader {
	return &DisabledUploader{maxFileSize: maxFileSize}
}

func (d *DisabledUploader) Upload(context.Context, UploadInput) (Object, error) {
	return Object{}, fmt.Errorf("%w: image storage is not configured", ErrCredentials)
}

func (d *DisabledUploader) Delete(context.Context, string) error {
	return nil
}

func (d *DisabledUploader) MaxFileSize() int64 {
	return d.maxFileSize
}

var _ Uploader = (*DisabledUploader)(nil)
