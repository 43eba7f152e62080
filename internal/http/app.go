// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"github.com/fxavier/prime-properties-api/platform/config"
	"github.com/fxavier/prime-properties-api/platform/httpkit"
	"github.com/fxavier/prime-properties-api/platform/logger"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (DB ping).
	Health HealthChecker
	// Authorizer backs the protected route group.
	Authorizer httpkit.Authorizer
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
