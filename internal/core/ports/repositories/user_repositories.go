package repositories

import (
	"context"
	"time"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
)

// UserReader defines read operations for profile data
type UserReader interface {
	// FindUserByID retrieves a specific profile by its ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a profile by its unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for profile data
type UserWriter interface {
	// SaveUser persists a new profile.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing profile's mutable details.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserLifecycleManager defines operations for managing profile lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a profile as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error
}

// UserRepositoryFacade combines all profile-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
