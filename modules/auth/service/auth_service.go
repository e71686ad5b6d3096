package service

import (
	"context"
	"time"

	"github.com/Ecospace254/employee-sub000/core/cache"
	"github.com/Ecospace254/employee-sub000/core/config"
	"github.com/Ecospace254/employee-sub000/core/errors"
	"github.com/Ecospace254/employee-sub000/core/logger"
	"github.com/Ecospace254/employee-sub000/core/utils"
	"github.com/Ecospace254/employee-sub000/modules/auth/dto"
	userEntity "github.com/Ecospace254/employee-sub000/modules/user/entity"
	userRepo "github.com/Ecospace254/employee-sub000/modules/user/repository"

	"github.com/google/uuid"
)

// AuthService implements session-cookie login on top of the user store.
type AuthService struct {
	users userRepo.UserRepositoryInterface
	cache cache.Cache
}

// AuthServiceInterface defines the service contract.
type AuthServiceInterface interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, string, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	Me(ctx context.Context, userID uuid.UUID) (*userEntity.Summary, *errors.AppError)
	SessionTTL() time.Duration
}

func NewAuthService(users userRepo.UserRepositoryInterface, c cache.Cache) AuthServiceInterface {
	return &AuthService{users: users, cache: c}
}

func (s *AuthService) SessionTTL() time.Duration {
	if cfg, ok := config.GetSafe(); ok && cfg.Auth.SessionTTLMinutes > 0 {
		return time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute
	}
	return 12 * time.Hour
}

// Login verifies the credential pair and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, string, *errors.AppError) {
	if req.Email == "" || req.Password == "" {
		return nil, "", errors.NewAppError(errors.ErrInvalidInput, "Email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("AuthService:Login:GetByEmail", err)
		return nil, "", errors.NewAppError(errors.ErrInternalServer, "Failed to look up user", err)
	}
	if user == nil || !utils.ComparePassword(user.PasswordHash, req.Password) {
		return nil, "", errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Email, s.SessionTTL())
	if err != nil {
		logger.Error("AuthService:Login:GenerateSessionToken", err)
		return nil, "", errors.NewAppError(errors.ErrInternalServer, "Failed to create session", err)
	}

	resp := &dto.LoginResponse{
		User: userEntity.Summary{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
			JobTitle:  user.JobTitle,
		},
	}
	return resp, token, nil
}

// Logout revokes the session token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	if token == "" {
		return nil
	}

	ttl := s.SessionTTL()
	if claims, err := utils.ValidateAndParseToken(token); err == nil && claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}

	if err := s.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist", err)
		return errors.NewAppError(errors.ErrInternalServer, "Failed to revoke session", err)
	}
	return nil
}

// Me returns the summary for the session's user.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*userEntity.Summary, *errors.AppError) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Error("AuthService:Me:GetByID", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}

	return &userEntity.Summary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		JobTitle:  user.JobTitle,
	}, nil
}
