package services

import (
	"context"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
)

// UserSvcFacade defines operations over marketplace profiles.
type UserSvcFacade interface {
	// CreateUser registers a new local profile.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// CreateOAuthUser finds or creates a profile for an externally
	// authenticated identity.
	CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, role domain.UserRole) (*domain.User, error)

	// GetUserByID retrieves a profile by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a profile by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateUser updates the actor's own mutable profile fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeleteUser soft deletes the actor's own profile. The record stays in
	// the store for audit but no longer resolves through the readers.
	DeleteUser(ctx context.Context, userID string) error
}
