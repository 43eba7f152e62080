// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"context"
	"strings"
	"time"

	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserIDKey is the gin context key for the authenticated user ID.
	ContextUserIDKey = "userID"
	// ContextUsernameKey is the gin context key for the authenticated username.
	ContextUsernameKey = "username"
	// HeaderRequestID carries the request ID in and out.
	HeaderRequestID = "X-Request-ID"

	errNotAuthenticated = "not authenticated"
)

// Principal is the caller resolved from a bearer token.
type Principal struct {
	UserID   uuid.UUID
	Username string
}

// Authorizer resolves a raw bearer token to a live user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (Principal, error)
}

// RequestLogger logs HTTP requests with timing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID))

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()

		reqLog := log.WithContext(c.Request.Context())
		for _, ginErr := range c.Errors {
			reqLog.HTTPError(c.Request.Method, path, status, ginErr.Err, clientIP)
		}
		reqLog.HTTPRequest(c.Request.Method, path, status, float64(latency.Milliseconds()), clientIP)
	}
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// AuthRequired returns middleware that resolves the bearer token through
// authorizer and stores the caller on the gin context.
func AuthRequired(authorizer Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			HandleError(c, apperr.Unauthorized(errNotAuthenticated))
			return
		}

		principal, err := authorizer.Authorize(c.Request.Context(), rawToken)
		if err != nil {
			HandleError(c, err)
			return
		}

		c.Set(ContextUserIDKey, principal.UserID)
		c.Set(ContextUsernameKey, principal.Username)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.UserIDKey, principal.UserID.String()))
		c.Next()
	}
}

func extractBearerToken(authHeader string) (string, bool) {
	scheme, rawToken, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return "", false
	}

	return rawToken, true
}
