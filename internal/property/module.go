// Package property provides the property bounded context module: lookups,
// listings, images and subscriptions.
package property

import (
	"time"

	"github.com/fxavier/prime-properties-api/internal/adapters/storage"
	apphttp "github.com/fxavier/prime-properties-api/internal/http"
	"github.com/fxavier/prime-properties-api/internal/property/handler"
	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/internal/property/service"
	"github.com/fxavier/prime-properties-api/platform/logger"
	"github.com/fxavier/prime-properties-api/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the property bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the property module.
func NewModule(pool *pgxpool.Pool, uploader storage.Uploader, uploadTimeout time.Duration, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, uploader, uploadTimeout, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "property"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts property routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/property"), ctx.Protected.Group("/property"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
