// Package auth provides login and token verification.
package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/audit"
	"stockmaster/internal/domain/users"
	"stockmaster/pkg/logger"
)

// LoginResult is the successful authentication payload.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *users.User `json:"user"`
}

type Service struct {
	users  users.Repository
	tokens *TokenIssuer
	audit  audit.Recorder
}

func NewService(userRepo users.Repository, tokens *TokenIssuer, recorder audit.Recorder) *Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Service{users: userRepo, tokens: tokens, audit: recorder}
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords fail identically so the response does not leak which it was.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, apperror.NewUnauthorized("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, apperror.NewInternal(err)
	}

	token, expires, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Record(ctx, &audit.Event{
		ID:       id.New(),
		Entity:   "user",
		EntityID: u.ID,
		Action:   audit.ActionLogin,
		UserID:   u.ID,
		At:       time.Now().UTC(),
		Payload:  map[string]any{"email": u.Email},
	}); err != nil {
		logger.Warn(ctx, "audit login record failed", "error", err)
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID, "email", u.Email)
	return &LoginResult{Token: token, ExpiresAt: expires, User: u}, nil
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, u *users.User, password string) error {
	if err := u.Validate(ctx); err != nil {
		return err
	}
	if len(password) < 8 {
		return apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}
	exists, err := s.users.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("user", "email", u.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if id.IsNil(u.ID) {
		u.ID = id.New()
	}
	u.PasswordHash = string(hash)
	u.IsActive = true
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	return s.users.Create(ctx, u)
}

// Tokens exposes the issuer for the authentication middleware.
func (s *Service) Tokens() *TokenIssuer { return s.tokens }
