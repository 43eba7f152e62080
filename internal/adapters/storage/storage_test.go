package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConfig struct {
	endpoint string
	useSSL   bool
	baseURL  string
}

func (c stubConfig) GetMinIOEndpoint() string      { return c.endpoint }
func (c stubConfig) GetMinIOAccessKey() string     { return "minio" }
func (c stubConfig) GetMinIOSecretKey() string     { return "minio123" }
func (c stubConfig) GetMinIOUseSSL() bool          { return c.useSSL }
func (c stubConfig) GetMinIOBucket() string        { return "property-images" }
func (c stubConfig) GetMinIOPublicBaseURL() string { return c.baseURL }
func (c stubConfig) GetMinIOMaxFileSize() int64    { return 1024 }
func (c stubConfig) IsMinIOEnabled() bool          { return c.endpoint != "" }

func TestObjectKeyIsUniqueAndScoped(t *testing.T) {
	pattern := regexp.MustCompile(`^properties/abc/front-view_[0-9a-f]{8}\.jpg$`)

	a := objectKey("properties/abc", "front view.JPG")
	b := objectKey("properties/abc", "front view.JPG")

	assert.Regexp(t, pattern, a)
	assert.NotEqual(t, a, b)
}

func TestObjectKeyDropsClientPath(t *testing.T) {
	key := objectKey("properties/abc", `..\..\etc\passwd.png`)
	assert.Regexp(t, `^properties/abc/passwd_[0-9a-f]{8}\.png$`, key)

	assert.Regexp(t, `^properties/abc/image_[0-9a-f]{8}$`, objectKey("properties/abc", ""))
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(stubConfig{endpoint: "minio:9000", baseURL: "https://cdn.example.com/"}))
	assert.Equal(t, "http://minio:9000", publicBaseURL(stubConfig{endpoint: "minio:9000"}))
	assert.Equal(t, "https://s3.example.com", publicBaseURL(stubConfig{endpoint: "s3.example.com", useSSL: true}))
}

func TestNewMinIOServiceRequiresConfig(t *testing.T) {
	_, err := NewMinIOService(stubConfig{})
	assert.ErrorIs(t, err, ErrCredentials)

	svc, err := NewMinIOService(stubConfig{endpoint: "localhost:9000"})
	require.NoError(t, err)
	assert.Equal(t, int64(1024), svc.MaxFileSize())
	assert.Equal(t, "http://localhost:9000", svc.baseURL)
}

func TestClassify(t *testing.T) {
	denied := minio.ErrorResponse{Code: "AccessDenied", Message: "Access Denied."}
	assert.ErrorIs(t, classify(denied), ErrCredentials)

	badKey := minio.ErrorResponse{Code: "InvalidAccessKeyId"}
	assert.ErrorIs(t, classify(badKey), ErrCredentials)

	assert.ErrorIs(t, classify(minio.ErrorResponse{Code: "SlowDown"}), ErrTransient)
	assert.ErrorIs(t, classify(fmt.Errorf("put: %w", context.DeadlineExceeded)), ErrTransient)
	assert.ErrorIs(t, classify(errors.New("connection refused")), ErrTransient)
}

func TestClassifyKeepsCause(t *testing.T) {
	err := classify(fmt.Errorf("put: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, ErrTransient)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	var resp minio.ErrorResponse
	require.ErrorAs(t, classify(denied), &resp)
	assert.Equal(t, "AccessDenied", resp.Code)
}

func TestDisabledUploader(t *testing.T) {
	u := NewDisabledUploader(2048)

	_, err := u.Upload(context.Background(), UploadInput{})
	assert.ErrorIs(t, err, ErrCredentials)
	assert.NoError(t, u.Delete(context.Background(), "k"))
	assert.Equal(t, int64(2048), u.MaxFileSize())
}

func TestImageValidation(t *testing.T) {
	assert.NoError(t, ValidateImageContentType("image/JPEG; charset=binary"))
	assert.ErrorIs(t, ValidateImageContentType("application/pdf"), ErrUnsupportedContentType)

	assert.ErrorIs(t, ValidateFileSize(0, 10), ErrFileSize)
	assert.ErrorIs(t, ValidateFileSize(11, 10), ErrFileSize)
	assert.NoError(t, ValidateFileSize(10, 10))
}

func TestSniffImageContentType(t *testing.T) {
	png := []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")
	ct, err := SniffImageContentType(png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	_, err = SniffImageContentType([]byte("<html><body>hi</body></html>"))
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}
