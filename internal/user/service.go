package user

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/validation"

	"go.uber.org/zap"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uint, email, role string) (string, error)
}

type Service interface {
	Register(ctx context.Context, params RegisterParams) (string, *User, error)
	Login(ctx context.Context, params LoginParams) (string, *User, error)
	Profile(ctx context.Context, userID uint) (*User, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	if err := validation.Validate(params); err != nil {
		return "", nil, err
	}

	hashed, err := HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, params.Username, params.Email, hashed, RoleCustomer)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to issue token", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, params LoginParams) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	if err := validation.Validate(params); err != nil {
		return "", nil, err
	}

	u, err := s.repo.FindByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("login with unknown email")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPasswordHash(params.Password, u.Password) {
		log.Info("password mismatch", zap.Uint("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		log.Error("failed to issue token", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}
	return token, u, nil
}

// Profile loads the account behind an authenticated token. The password
// hash is cleared before returning.
func (s *service) Profile(ctx context.Context, userID uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			logger.FromCtx(ctx).Error("failed to load profile",
				zap.String("layer", "service"),
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		}
		return nil, err
	}
	u.Password = ""
	return u, nil
}
