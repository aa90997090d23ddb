package domain

import "time"

// UserRole is the marketplace role of a profile. Stored verbatim.
type UserRole string

const (
	RoleMSME     UserRole = "msme"
	RoleBuyer    UserRole = "buyer"
	RoleInvestor UserRole = "investor"
)

// Valid reports whether r is one of the three marketplace roles.
func (r UserRole) Valid() bool {
	return r == RoleMSME || r == RoleBuyer || r == RoleInvestor
}

// AuthProvider identifies how a profile authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User is a marketplace profile.
type User struct {
	UserID        string       `json:"userID"` // Primary Key (UUID)
	Email         string       `json:"email"`
	Name          string       `json:"name"`
	Role          UserRole     `json:"role"`
	WalletAddress *string      `json:"walletAddress,omitempty"`
	PasswordHash  string       `json:"-"`
	AuthProvider  AuthProvider `json:"-"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	DeletedAt     *time.Time   `json:"deletedAt,omitempty"` // Soft delete
}

// Actor is the explicit session context passed into every orchestrator call.
// It replaces the original design's ad-hoc per-view profile fetches so that
// authorization checks are testable in isolation from any UI.
type Actor struct {
	UserID string
	Email  string
	Role   UserRole
}
