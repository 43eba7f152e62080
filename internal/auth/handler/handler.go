package handler

import (
	"context"

	"github.com/fxavier/prime-properties-api/internal/auth/repository"
	"github.com/fxavier/prime-properties-api/internal/auth/service"
	"github.com/fxavier/prime-properties-api/internal/auth/token"
	"github.com/fxavier/prime-properties-api/internal/auth/transport"
	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/httpkit"
	"github.com/fxavier/prime-properties-api/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	tokenTypeBearer = "bearer"
)

// AuthService is the subset of the auth service the handler calls.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (repository.User, error)
	Login(ctx context.Context, username, plainPassword string) (token.Token, error)
	GetMe(ctx context.Context, userID uuid.UUID) (repository.User, error)
}

type Handler struct {
	svc AuthService
	val *validator.Validator
}

func New(svc AuthService, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/user", h.Register)
	rg.POST("/token", h.Login)
}

func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(msgValidationFailed).WithDetails(validator.Errors(err)))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Name:     req.Name,
		Password: req.Password,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toUserResponse(user))
}

func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest))
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Validation(msgValidationFailed).WithDetails(validator.Errors(err)))
		return
	}

	tok, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.TokenResponse{
		AccessToken: tok.Value,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   tok.ExpiresAt,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	user, err := h.svc.GetMe(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toUserResponse(user))
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:                 user.ID.String(),
		Username:           user.Username,
		Email:              user.Email,
		Name:               user.Name,
		Phone:              user.Phone,
		IsSubscribed:       user.IsSubscribed,
		SubscriptionExpiry: user.SubscriptionExpiry,
		CreatedAt:          user.CreatedAt,
	}
}
