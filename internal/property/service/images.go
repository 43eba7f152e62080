package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/fxavier/prime-properties-api/internal/adapters/storage"
	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/internal/property/transport"
	"github.com/fxavier/prime-properties-api/platform/apperr"

	"github.com/google/uuid"
)

const sniffLen = 512

// ImageUpload is one multipart file destined for a property.
type ImageUpload struct {
	FileName string
	Size     int64
	Content  io.Reader
	IsCover  bool
}

// UploadAndAttach stores the image in blob storage and only then records it.
// A failed upload leaves no image row behind.
func (s *Service) UploadAndAttach(ctx context.Context, callerID, propertyID uuid.UUID, upload ImageUpload) (transport.ImageResponse, error) {
	if _, err := s.ownedProperty(ctx, callerID, propertyID); err != nil {
		return transport.ImageResponse{}, err
	}

	if err := storage.ValidateFileSize(upload.Size, s.uploader.MaxFileSize()); err != nil {
		return transport.ImageResponse{}, apperr.Validation(err.Error())
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return transport.ImageResponse{}, apperr.BadRequest("could not read uploaded file")
	}
	head = head[:n]
	contentType, err := storage.SniffImageContentType(head)
	if err != nil {
		return transport.ImageResponse{}, apperr.Validation("file must be a JPEG, PNG, GIF or WebP image")
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	obj, err := s.uploader.Upload(uploadCtx, storage.UploadInput{
		Folder:      "properties/" + propertyID.String(),
		FileName:    upload.FileName,
		ContentType: contentType,
		Reader:      io.MultiReader(bytes.NewReader(head), upload.Content),
		Size:        upload.Size,
	})
	if err != nil {
		s.log.UploadEvent(propertyID.String(), "", false, err.Error())
		return transport.ImageResponse{}, uploadError(err)
	}
	s.log.UploadEvent(propertyID.String(), obj.Key, true, "")

	img, err := s.repo.AddImage(ctx, repository.CreateImageParams{
		PropertyID: propertyID,
		ImageURL:   obj.URL,
		IsCover:    upload.IsCover,
	})
	if err != nil {
		s.removeOrphan(obj.Key)
		return transport.ImageResponse{}, err
	}

	s.log.Info("property image attached", "id", img.ID, "property_id", propertyID, "is_cover", img.IsCover)
	return toImageResponse(img), nil
}

// removeOrphan deletes an uploaded object whose database row was not written.
func (s *Service) removeOrphan(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.uploadTimeout)
	defer cancel()
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.log.Warn("orphaned upload not removed", "object_key", key, "error", err)
	}
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, storage.ErrCredentials):
		return apperr.Upstream("image storage rejected the upload", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Upstream("image storage timed out, retry the upload", err)
	default:
		return apperr.Upstream("image storage is unavailable, retry the upload", err)
	}
}

// timeoutOrDefault keeps a zero upload timeout from cancelling every upload.
func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}
