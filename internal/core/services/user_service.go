package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portsrepo "github.com/invomesh/invoice_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/invomesh/invoice_marketplace_app/internal/middleware"
	"github.com/invomesh/invoice_marketplace_app/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.UserRole(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, apperrors.ErrValidation)
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("profile with this email already exists: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing profile: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		Role:         role,
		PasswordHash: passwordHash,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save profile", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	logger.Info("Profile created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, role domain.UserRole) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, apperrors.ErrValidation)
	}
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing profile: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		AuthProvider: provider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save externally authenticated profile", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	logger.Info("Externally authenticated profile created", slog.String("user_id", user.UserID), slog.String("provider", string(provider)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.WalletAddress != nil {
		user.WalletAddress = req.WalletAddress
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update profile", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	logger.Info("Profile updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now()); err != nil {
		logger.Error("Failed to delete profile", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	logger.Info("Profile deleted", slog.String("user_id", userID))
	return nil
}
