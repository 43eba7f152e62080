// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"github.com/fxavier/prime-properties-api/internal/auth/adapter"
	"github.com/fxavier/prime-properties-api/internal/auth/handler"
	"github.com/fxavier/prime-properties-api/internal/auth/repository"
	"github.com/fxavier/prime-properties-api/internal/auth/service"
	"github.com/fxavier/prime-properties-api/internal/auth/token"
	apphttp "github.com/fxavier/prime-properties-api/internal/http"
	"github.com/fxavier/prime-properties-api/platform/config"
	"github.com/fxavier/prime-properties-api/platform/httpkit"
	"github.com/fxavier/prime-properties-api/platform/logger"
	"github.com/fxavier/prime-properties-api/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	authorizer *adapter.AuthorizerAdapter
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	tokens := token.New(cfg)
	svc := service.New(repo, tokens, cfg, log)

	return &Module{
		handler:    handler.New(svc, val),
		authorizer: adapter.NewAuthorizerAdapter(svc),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Authorizer returns the token resolver used by the AuthRequired middleware.
func (m *Module) Authorizer() httpkit.Authorizer {
	return m.authorizer
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/auth"))

	ctx.Protected.GET("/auth/me", m.handler.GetMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
