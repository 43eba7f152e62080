package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fxavier/prime-properties-api/internal/auth/password"
	"github.com/fxavier/prime-properties-api/internal/auth/repository"
	"github.com/fxavier/prime-properties-api/internal/auth/token"
	"github.com/fxavier/prime-properties-api/platform/apperr"
	"github.com/fxavier/prime-properties-api/platform/config"
	"github.com/fxavier/prime-properties-api/platform/logger"
	"github.com/fxavier/prime-properties-api/platform/phone"
	"github.com/fxavier/prime-properties-api/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgInvalidCredentials = "incorrect username or password"
	msgCouldNotValidate   = "could not validate credentials"
	msgUsernameTaken      = "username already registered"
	msgEmailTaken         = "email already registered"

	dummyPassword = "timing-equaliser-password"
)

// RegisterInput is the unhashed registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Name     string
	Password string
}

type Service struct {
	repo      repository.AuthRepository
	tokens    *token.Service
	cost      int
	region    string
	dummyHash string
	log       *logger.Logger
}

func New(repo repository.AuthRepository, tokens *token.Service, cfg config.AuthConfig, log *logger.Logger) *Service {
	// Unknown usernames are compared against this hash so they cost one bcrypt run.
	dummyHash, err := password.Hash(dummyPassword, cfg.GetBcryptCost())
	if err != nil {
		log.Warn("dummy password hash failed", "error", err)
	}
	return &Service{
		repo:      repo,
		tokens:    tokens,
		cost:      cfg.GetBcryptCost(),
		region:    cfg.GetPhoneDefaultRegion(),
		dummyHash: dummyHash,
		log:       log,
	}
}

// Register hashes the password and persists a new user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (repository.User, error) {
	if len(in.Password) > password.MaxBytes {
		return repository.User{}, passwordTooLong()
	}

	params := repository.CreateUserParams{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Name:     sanitize.Line(in.Name),
		Phone:    phone.NormalizeE164(in.Phone, s.region),
	}

	if err := s.ensureAvailable(ctx, params.Username, params.Email); err != nil {
		s.log.AuthEvent("register", params.Username, false, err.Error())
		return repository.User{}, err
	}

	hash, err := password.Hash(in.Password, s.cost)
	if errors.Is(err, password.ErrTooLong) {
		return repository.User{}, passwordTooLong()
	}
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "hash password failed", err).WithOp("auth.Register")
	}
	params.PasswordHash = hash

	// The unique indexes still decide concurrent registrations.
	user, err := s.repo.CreateUser(ctx, params)
	if err != nil {
		s.log.AuthEvent("register", params.Username, false, err.Error())
		return repository.User{}, err
	}

	s.log.AuthEvent("register", user.Username, true, "")
	return user, nil
}

func passwordTooLong() error {
	return apperr.Validation("password is too long").
		WithDetails(map[string]string{"password": fmt.Sprintf("at most %d bytes", password.MaxBytes)})
}

func (s *Service) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return apperr.Conflict(msgUsernameTaken).WithDetails(map[string]string{"username": "taken"})
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return err
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return apperr.Conflict(msgEmailTaken).WithDetails(map[string]string{"email": "taken"})
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return err
	}
	return nil
}

// Login verifies the password and issues an access token. Unknown users and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, plainPassword string) (token.Token, error) {
	username = strings.TrimSpace(username)

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if !apperr.Is(err, apperr.KindNotFound) {
			return token.Token{}, err
		}
		_ = password.Compare(s.dummyHash, plainPassword)
		s.log.AuthEvent("login", username, false, "unknown username")
		return token.Token{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", username, false, "password mismatch")
		return token.Token{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	tok, err := s.tokens.Issue(user.Username, user.ID)
	if err != nil {
		return token.Token{}, apperr.Wrap(apperr.KindInternal, "issue token failed", err).WithOp("auth.Login")
	}

	s.log.AuthEvent("login", user.Username, true, "")
	return tok, nil
}

// Authorize verifies a bearer token and re-resolves its user.
func (s *Service) Authorize(ctx context.Context, rawToken string) (repository.User, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		s.log.AuthEvent("authorize", "", false, err.Error())
		return repository.User{}, apperr.Unauthorized(msgCouldNotValidate)
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("authorize", claims.Username, false, "user no longer exists")
			return repository.User{}, apperr.Unauthorized(msgCouldNotValidate)
		}
		return repository.User{}, err
	}

	if user.Username != claims.Username {
		s.log.AuthEvent("authorize", claims.Username, false, "username changed")
		return repository.User{}, apperr.Unauthorized(msgCouldNotValidate)
	}

	return user, nil
}

// GetMe returns the user with the given ID.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return repository.User{}, err
	}
	return user, nil
}
