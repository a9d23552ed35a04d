// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"uplio_backend/internal/auth"
	"uplio_backend/internal/common"
	"uplio_backend/internal/config"
	"uplio_backend/internal/platform/crypto"
	"uplio_backend/internal/shared"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const minPasswordLength = 8

var validate = validator.New()

// Service reconciles inbound identity claims against the credential store.
type Service struct {
	repo   Repository
	tokens shared.TokenService
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, tokens shared.TokenService, cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterOrLogin is the single entry point behind POST /register. The
// request carries either a provider credential or an email/password pair;
// each path performs at most one user insert-or-update and issues exactly
// one token on success.
func (s *Service) RegisterOrLogin(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.Credential != "" {
		return s.registerWithCredential(ctx, req.Credential)
	}
	if req.Email != "" {
		return s.registerWithPassword(ctx, req.Email, req.Password)
	}
	return nil, common.ErrBadRequest.WithMessage("Missing email/password or credential")
}

func (s *Service) registerWithCredential(ctx context.Context, credential string) (*AuthResult, error) {
	claim, err := auth.DecodeUnverifiedGoogleCredential(credential)
	if err != nil {
		s.logger.Warn("Rejected malformed identity credential", zap.Error(err))
		return nil, common.ErrBadRequest.WithMessage("Invalid credential token")
	}

	existing, err := s.repo.FindByEmail(ctx, claim.Email)
	if err == nil {
		now := time.Now()
		existing.LastSeenAt = &now
		if uerr := s.repo.Update(ctx, existing); uerr != nil {
			s.logger.Error("Failed to refresh last-seen on provider sign-in",
				zap.Error(uerr), zap.String("userID", existing.ID))
			return nil, common.ErrInternalServer
		}
		token, _, terr := s.tokens.Issue(existing)
		if terr != nil {
			return nil, common.ErrInternalServer
		}
		s.logger.Info("Provider user signed in", zap.String("userID", existing.ID))
		return &AuthResult{User: existing, Token: token}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Error looking up provider user by email", zap.Error(err))
		return nil, common.ErrInternalServer
	}

	id := claim.Subject
	if id == "" {
		id = crypto.NewOpaqueID("g_")
	}
	newUser := &User{
		ID:        id,
		Email:     strings.ToLower(strings.TrimSpace(claim.Email)),
		Name:      claim.Name,
		Picture:   claim.Picture,
		Provider:  shared.ProviderGoogle,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		s.logger.Error("Failed to create provider user", zap.Error(err))
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	token, _, err := s.tokens.Issue(newUser)
	if err != nil {
		return nil, common.ErrInternalServer
	}
	s.logger.Info("Provider user created", zap.String("userID", newUser.ID))
	return &AuthResult{User: newUser, Token: token}, nil
}

func (s *Service) registerWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, common.ErrBadRequest.WithMessage("Invalid email")
	}
	if len(password) < minPasswordLength {
		return nil, common.ErrBadRequest.WithMessage("Password must be at least 8 characters")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		// Convenience login through the registration endpoint: a matching
		// password re-authenticates the existing account instead of failing.
		if existing.PasswordHash == nil || !common.CheckPasswordHash(password, *existing.PasswordHash) {
			return nil, common.ErrConflict.WithMessage("User already exists. Wrong password.")
		}
		token, _, terr := s.tokens.Issue(existing)
		if terr != nil {
			return nil, common.ErrInternalServer
		}
		s.logger.Info("Existing user re-authenticated via register", zap.String("userID", existing.ID))
		return &AuthResult{User: existing, Token: token, Note: "existing"}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("Error looking up user by email during registration", zap.Error(err))
		return nil, common.ErrInternalServer
	}

	hash, err := common.HashPassword(password, s.cfg.BCryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	newUser := &User{
		ID:           crypto.NewOpaqueID("u_"),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: &hash,
		Provider:     shared.ProviderLocal,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", newUser.Email))
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	token, _, err := s.tokens.Issue(newUser)
	if err != nil {
		return nil, common.ErrInternalServer
	}
	s.logger.Info("User registered successfully", zap.String("userID", newUser.ID))
	return &AuthResult{User: newUser, Token: token}, nil
}

// GetUserByID looks up a single user.
func (s *Service) GetUserByID(ctx context.Context, id string) (*User, error) {
	usr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error("Error finding user by ID", zap.Error(err), zap.String("userID", id))
		}
		return nil, err
	}
	return usr, nil
}

// ListUsers returns every registered user, sanitized for the public listing.
func (s *Service) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out, nil
}
