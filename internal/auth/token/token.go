// Package token issues and verifies HS256 bearer tokens.
package token

import (
	"errors"
	"time"

	"github.com/fxavier/prime-properties-api/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrMalformedPayload = errors.New("token payload malformed")
)

// Token is a signed access token and its absolute expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Claims is the verified subject of a token.
type Claims struct {
	Username  string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

type accessClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Service signs tokens with a key fixed at construction.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates a token service from the JWT configuration.
func New(cfg config.JWTConfig) *Service {
	return NewWithClock(cfg.GetJWTSecret(), cfg.GetAccessTokenTTL(), time.Now)
}

// NewWithClock creates a token service with an explicit clock.
func NewWithClock(secret string, ttl time.Duration, now func() time.Time) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: now}
}

// TTL returns the default lifetime of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the user with the default TTL.
func (s *Service) Issue(username string, userID uuid.UUID) (Token, error) {
	return s.IssueWithTTL(username, userID, s.ttl)
}

// IssueWithTTL signs a token that expires ttl after the current time.
func (s *Service) IssueWithTTL(username string, userID uuid.UUID, ttl time.Duration) (Token, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(ttl)

	claims := accessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

// Verify checks the signature, expiry and subject fields of raw.
func (s *Service) Verify(raw string) (Claims, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, classify(err)
	}

	if claims.Subject == "" || claims.UserID == "" {
		return Claims{}, ErrMalformedPayload
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Claims{}, ErrMalformedPayload
	}

	return Claims{
		Username:  claims.Subject,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	default:
		return ErrMalformedPayload
	}
}
