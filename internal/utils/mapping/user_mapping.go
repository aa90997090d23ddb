package mapping

import (
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/invomesh/invoice_marketplace_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	var provider *string
	if d.AuthProvider != "" {
		p := string(d.AuthProvider)
		provider = &p
	}
	return models.User{
		ID:            d.UserID,
		Email:         d.Email,
		Name:          d.Name,
		Role:          string(d.Role),
		WalletAddress: d.WalletAddress,
		PasswordHash:  d.PasswordHash,
		AuthProvider:  provider,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		DeletedAt:     d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	provider := domain.ProviderLocal
	if m.AuthProvider != nil {
		provider = domain.AuthProvider(*m.AuthProvider)
	}
	return domain.User{
		UserID:        m.ID,
		Email:         m.Email,
		Name:          m.Name,
		Role:          domain.UserRole(m.Role),
		WalletAddress: m.WalletAddress,
		PasswordHash:  m.PasswordHash,
		AuthProvider:  provider,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     m.DeletedAt,
	}
}
