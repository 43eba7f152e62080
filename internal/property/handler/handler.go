package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/internal/property/service"
	"github.com/fxavier/prime-properties-api/internal/property/transport"
	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/httpkit"
	"github.com/fxavier/prime-properties-api/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
	msgMissingFile      = "file is required"
)

// PropertyService is the property service surface used by the handler.
type PropertyService interface {
	CreateLookup(ctx context.Context, kind repository.LookupKind, req transport.LookupRequest) (transport.LookupResponse, error)
	GetLookup(ctx context.Context, kind repository.LookupKind, id uuid.UUID) (transport.LookupResponse, error)
	ListLookups(ctx context.Context, kind repository.LookupKind) ([]transport.LookupResponse, error)
	DeleteLookup(ctx context.Context, kind repository.LookupKind, id uuid.UUID) error

	CreateSubscriptionType(ctx context.Context, req transport.CreateSubscriptionTypeRequest) (transport.SubscriptionTypeResponse, error)
	GetSubscriptionType(ctx context.Context, id uuid.UUID) (transport.SubscriptionTypeResponse, error)
	ListSubscriptionTypes(ctx context.Context) ([]transport.SubscriptionTypeResponse, error)

	CreateProperty(ctx context.Context, callerID uuid.UUID, req transport.CreatePropertyRequest) (transport.PropertyResponse, error)
	UpdateProperty(ctx context.Context, callerID, id uuid.UUID, req transport.UpdatePropertyRequest) (transport.PropertyResponse, error)
	ListProperties(ctx context.Context) ([]transport.PropertyResponse, error)
	ListByPropertyType(ctx context.Context, typeID uuid.UUID) ([]transport.PropertyResponse, error)
	ListByBusinessType(ctx context.Context, businessTypeID uuid.UUID) ([]transport.PropertyResponse, error)
	ListByCity(ctx context.Context, city string) ([]transport.PropertyResponse, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]transport.PropertyResponse, error)

	ListWithCoverImages(ctx context.Context) ([]transport.PropertyWithCoverResponse, error)
	GetDetail(ctx context.Context, id uuid.UUID) (transport.PropertyDetailResponse, error)
	ListWithSubscriptions(ctx context.Context) ([]transport.PropertyWithSubscriptionResponse, error)

	UploadAndAttach(ctx context.Context, callerID, propertyID uuid.UUID, upload service.ImageUpload) (transport.ImageResponse, error)
	Subscribe(ctx context.Context, callerID, propertyID uuid.UUID, req transport.SubscribeRequest) (transport.SubscriptionResponse, error)
}

// Handler handles HTTP requests for properties and their lookups.
type Handler struct {
	svc PropertyService
	val *validator.Validator
}

// New creates a new property handler.
func New(svc PropertyService, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

var lookupPaths = map[string]repository.LookupKind{
	"/property_types": repository.LookupPropertyType,
	"/countries":      repository.LookupCountry,
	"/business_types": repository.LookupBusinessType,
}

// RegisterRoutes mounts reads on public and writes on protected. Both groups
// are expected to share the same prefix.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	for path, kind := range lookupPaths {
		public.GET(path, h.ListLookups(kind))
		public.GET(path+"/:id", h.GetLookup(kind))
		protected.POST(path, h.CreateLookup(kind))
		protected.DELETE(path+"/:id", h.DeleteLookup(kind))
	}

	public.GET("/subscription_types", h.ListSubscriptionTypes)
	public.GET("/subscription_types/:id", h.GetSubscriptionType)
	protected.POST("/subscription_types", h.CreateSubscriptionType)

	public.GET("/properties", h.ListProperties)
	public.GET("/properties/with-cover-images", h.ListWithCoverImages)
	public.GET("/properties/with-subscriptions", h.ListWithSubscriptions)
	public.GET("/properties/:id", h.GetDetail)
	public.GET("/type/:id", h.ListByPropertyType)
	public.GET("/business/:id", h.ListByBusinessType)
	public.GET("/location/:city", h.ListByCity)
	public.GET("/user/:id", h.ListByCreator)

	protected.POST("/properties", h.CreateProperty)
	protected.PUT("/properties/:id", h.UpdateProperty)
	protected.POST("/properties/:id/image", h.UploadImage)
	protected.POST("/properties/:id/subscriptions", h.Subscribe)
}

// CreateLookup returns the create handler for one lookup table.
// POST /api/v1/property/{property_types,countries,business_types}
func (h *Handler) CreateLookup(kind repository.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transport.LookupRequest
		if !h.bindJSON(c, &req) {
			return
		}

		result, err := h.svc.CreateLookup(c.Request.Context(), kind, req)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.Created(c, result)
	}
}

// GetLookup returns the get-by-id handler for one lookup table.
func (h *Handler) GetLookup(kind repository.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		result, err := h.svc.GetLookup(c.Request.Context(), kind, id)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, result)
	}
}

// ListLookups returns the list handler for one lookup table.
func (h *Handler) ListLookups(kind repository.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := h.svc.ListLookups(c.Request.Context(), kind)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, result)
	}
}

// DeleteLookup returns the delete handler for one lookup table.
func (h *Handler) DeleteLookup(kind repository.LookupKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if httpkit.HandleError(c, h.svc.DeleteLookup(c.Request.Context(), kind, id)) {
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// CreateSubscriptionType creates a subscription tier.
// POST /api/v1/property/subscription_types
func (h *Handler) CreateSubscriptionType(c *gin.Context) {
	var req transport.CreateSubscriptionTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.CreateSubscriptionType(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetSubscriptionType retrieves a subscription tier.
// GET /api/v1/property/subscription_types/:id
func (h *Handler) GetSubscriptionType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.GetSubscriptionType(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListSubscriptionTypes lists subscription tiers.
// GET /api/v1/property/subscription_types
func (h *Handler) ListSubscriptionTypes(c *gin.Context) {
	result, err := h.svc.ListSubscriptionTypes(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateProperty creates a property owned by the caller.
// POST /api/v1/property/properties
func (h *Handler) CreateProperty(c *gin.Context) {
	var req transport.CreatePropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.CreateProperty(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// UpdateProperty applies a partial update to the caller's property.
// PUT /api/v1/property/properties/:id
func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req transport.UpdatePropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.UpdateProperty(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListProperties lists every property.
// GET /api/v1/property/properties
func (h *Handler) ListProperties(c *gin.Context) {
	result, err := h.svc.ListProperties(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByPropertyType lists properties of one property type.
// GET /api/v1/property/type/:id
func (h *Handler) ListByPropertyType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.ListByPropertyType(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByBusinessType lists properties of one business type.
// GET /api/v1/property/business/:id
func (h *Handler) ListByBusinessType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.ListByBusinessType(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByCity lists properties in a city.
// GET /api/v1/property/location/:city
func (h *Handler) ListByCity(c *gin.Context) {
	result, err := h.svc.ListByCity(c.Request.Context(), c.Param("city"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByCreator lists properties created by a user.
// GET /api/v1/property/user/:id
func (h *Handler) ListByCreator(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.ListByCreator(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListWithCoverImages lists properties that have a cover image.
// GET /api/v1/property/properties/with-cover-images
func (h *Handler) ListWithCoverImages(c *gin.Context) {
	result, err := h.svc.ListWithCoverImages(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListWithSubscriptions lists properties with their latest subscription.
// GET /api/v1/property/properties/with-subscriptions
func (h *Handler) ListWithSubscriptions(c *gin.Context) {
	result, err := h.svc.ListWithSubscriptions(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetDetail returns a property with its images and lookup names.
// GET /api/v1/property/properties/:id
func (h *Handler) GetDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.svc.GetDetail(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UploadImage stores a multipart image and attaches it to the property.
// POST /api/v1/property/properties/:id/image
func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgMissingFile))
		return
	}
	isCover := false
	if raw := strings.TrimSpace(c.PostForm("is_cover")); raw != "" {
		isCover, err = strconv.ParseBool(raw)
		if err != nil {
			httpkit.HandleError(c, apperr.Validation("is_cover must be a boolean").
				WithDetails(map[string]string{"is_cover": "boolean"}))
			return
		}
	}

	file, err := header.Open()
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("could not read uploaded file"))
		return
	}
	defer file.Close()

	result, err := h.svc.UploadAndAttach(c.Request.Context(), identity.UserID(), id, service.ImageUpload{
		FileName: header.Filename,
		Size:     header.Size,
		Content:  file,
		IsCover:  isCover,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Subscribe starts a subscription for the caller's property.
// POST /api/v1/property/properties/:id/subscriptions
func (h *Handler) Subscribe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req transport.SubscribeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Subscribe(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(msgValidationFailed).WithDetails(validator.Errors(err)))
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidID).WithDetails(map[string]string{name: "uuid"}))
		return uuid.Nil, false
	}
	return id, true
}
