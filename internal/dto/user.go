package dto

import (
	"time"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a profile.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,marketrole"`
}

// UpdateUserRequest defines the data allowed for updating a profile.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	Name          *string `json:"name"`
	WalletAddress *string `json:"walletAddress"`
}

// LoginRequest carries local login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the access token and the role used for dashboard routing.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the API representation of a profile.
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	WalletAddress *string   `json:"walletAddress,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain User to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.UserID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          string(u.Role),
		WalletAddress: u.WalletAddress,
		CreatedAt:     u.CreatedAt,
	}
}
