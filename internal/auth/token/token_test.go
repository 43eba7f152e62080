package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-key"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(ttl time.Duration) (*Service, *clock) {
	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewWithClock(testSecret, ttl, c.now), c
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc, c := newTestService(30 * time.Minute)
	userID := uuid.New()

	tok, err := svc.Issue("alice", userID)
	require.NoError(t, err)
	assert.Equal(t, c.t.Add(30*time.Minute), tok.ExpiresAt)

	claims, err := svc.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.ExpiresAt.Equal(tok.ExpiresAt))
}

func TestPayloadCarriesSubIDAndExp(t *testing.T) {
	svc, _ := newTestService(time.Minute)
	userID := uuid.New()

	tok, err := svc.Issue("alice", userID)
	require.NoError(t, err)

	parts := strings.Split(tok.Value, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "alice", payload["sub"])
	assert.Equal(t, userID.String(), payload["id"])
	assert.Contains(t, payload, "exp")
}

func TestVerifyExpired(t *testing.T) {
	svc, c := newTestService(time.Minute)

	tok, err := svc.IssueWithTTL("alice", uuid.New(), time.Second)
	require.NoError(t, err)

	c.t = c.t.Add(2 * time.Second)
	_, err = svc.Verify(tok.Value)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongKey(t *testing.T) {
	svc, c := newTestService(time.Minute)
	other := NewWithClock("another-key", time.Minute, c.now)

	tok, err := other.Issue("alice", uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	svc, c := newTestService(time.Minute)
	claims := accessClaims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	svc, c := newTestService(time.Minute)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrMalformedPayload)

	missingID := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, missingID).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	noExpiry := accessClaims{
		UserID:           uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, noExpiry).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
