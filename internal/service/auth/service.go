package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/mixlist/mixlist/internal/domain"
	"github.com/mixlist/mixlist/internal/repository"
	"github.com/mixlist/mixlist/pkg/config"
	"github.com/mixlist/mixlist/pkg/crypto"
	"github.com/mixlist/mixlist/pkg/token"
)

var (
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("a user with this email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a login response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles registration, login, and bearer-token authorization.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.Config
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.Config) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// Register creates an account and returns it with a signed bearer token.
// The email existence check and the insert are separate statements; the
// unique index on users.email turns the losing side of a concurrent
// duplicate registration into ErrEmailTaken as well.
func (s Service) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	signed, err := token.Issue(user.ID, s.cfg.JWTSecret)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, signed, nil
}

// Login verifies credentials and returns the account with a signed bearer
// token. Lookup and password failures collapse into ErrInvalidCredentials.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !crypto.VerifyPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	signed, err := token.Issue(user.ID, s.cfg.JWTSecret)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, signed, nil
}

// Authorize validates a bearer token and returns the subject account id.
// Verification is purely cryptographic; no session state is consulted.
func (s Service) Authorize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", token.ErrInvalidToken
	}
	return token.Parse(trimmed, s.cfg.JWTSecret)
}
