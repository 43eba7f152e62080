package transport

import "time"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Name     string `json:"name" validate:"omitempty,max=120"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is bound from an application/x-www-form-urlencoded body.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID                 string     `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	IsSubscribed       bool       `json:"is_subscribed"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry"`
	CreatedAt          time.Time  `json:"created_at"`
}
