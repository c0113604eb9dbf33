package user

import (
	"context"
	"errors"
	"fmt"

	"clinichub/models"
	"clinichub/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)

// Login verifies credentials and issues a fresh token, replacing any earlier one.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, errBadCredentials
		}
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errBadCredentials
	}
	return s.issueToken(ctx, usr)
}

func (s *DefaultUserService) issueToken(ctx context.Context, usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, string(usr.Role), s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	hash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, usr.ID, hash); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	if s.Tokens != nil {
		if err := s.Tokens.Set(ctx, usr.ID, hash, utils.AuthCacheTTL); err != nil {
			utils.GetLogger().Warn("Failed to cache token hash", zap.String("userID", usr.ID), zap.Error(err))
		}
	}
	return &AuthResponse{
		ID:    usr.ID,
		Token: token,
		Role:  usr.Role,
		Name:  usr.Name,
		Email: usr.Email,
		Image: usr.Image,
	}, nil
}

// Logout clears the stored and cached token hash.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.SetTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.Tokens != nil {
		if err := s.Tokens.Delete(ctx, userID); err != nil {
			utils.GetLogger().Warn("Failed to clear token cache", zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}

// Authenticate validates the token signature and checks its hash against the
// cache, falling back to the stored hash on a miss.
func (s *DefaultUserService) Authenticate(ctx context.Context, token string) (models.Actor, error) {
	userID, role, err := utils.ExtractClaims(token)
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid token: %w", models.ErrUnauthorized)
	}
	actor := models.Actor{ID: userID, Role: models.Role(role)}
	hash := utils.HashToken(token)

	if s.Tokens != nil {
		cached, err := s.Tokens.Get(ctx, userID)
		switch {
		case err == nil && cached == hash:
			return actor, nil
		case err == nil:
			return models.Actor{}, fmt.Errorf("token mismatch: %w", models.ErrUnauthorized)
		case !errors.Is(err, ErrCacheMiss):
			utils.GetLogger().Warn("Auth cache unavailable, falling back to database", zap.Error(err))
		}
	}

	usr, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Actor{}, fmt.Errorf("unknown user: %w", models.ErrUnauthorized)
		}
		return models.Actor{}, err
	}
	if usr.TokenHash == "" || usr.TokenHash != hash {
		return models.Actor{}, fmt.Errorf("token mismatch: %w", models.ErrUnauthorized)
	}
	if s.Tokens != nil {
		_ = s.Tokens.Set(ctx, userID, hash, utils.AuthCacheTTL)
	}
	return models.Actor{ID: usr.ID, Role: usr.Role}, nil
}
