package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestProductionLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.HTTPError("GET", "/api/v1/property/properties", 500, errors.New("conn reset"), "10.0.0.1")
	entry := decode(t, &buf)
	assert.Equal(t, "http_error", entry["msg"])
	assert.Equal(t, "conn reset", entry["error"])
	assert.Equal(t, float64(500), entry["status"])
}

func TestAuthEventFailureKeepsReasonInLog(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.AuthEvent("login", "alice", false, "wrong password")
	entry := decode(t, &buf)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "wrong password", entry["reason"])
	assert.Equal(t, false, entry["success"])
}

func TestWithContextAddsRequestScope(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("staging", &buf)

	ctx := context.WithValue(context.Background(), UserIDKey, "user-1")
	ctx = context.WithValue(ctx, RequestIDKey, "req-9")
	log.WithContext(ctx).Info("property created")

	entry := decode(t, &buf)
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "req-9", entry["request_id"])
}

func TestDevelopmentLoggerIsText(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("development", &buf).Debug("visible", "k", "v")

	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "k=v")
}
