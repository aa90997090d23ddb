package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portsrepo "github.com/invomesh/invoice_marketplace_app/internal/core/ports/repositories"
	"github.com/invomesh/invoice_marketplace_app/internal/models"
	"github.com/invomesh/invoice_marketplace_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `id, email, name, role, wallet_address, password_hash, auth_provider, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.Name,
		&m.Role,
		&m.WalletAddress,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO profiles (id, email, name, role, wallet_address, password_hash, auth_provider, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.Email,
		m.Name,
		m.Role,
		m.WalletAddress,
		m.PasswordHash,
		m.AuthProvider,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", classifyWriteErr(err))
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM profiles
		WHERE id = $1 AND deleted_at IS NULL;
	`
	m, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile by ID %s: %w", userID, err)
	}

	domainUser := mapping.ToDomainUser(m)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM profiles
		WHERE email = $1 AND deleted_at IS NULL;
	`
	m, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}

	domainUser := mapping.ToDomainUser(m)
	return &domainUser, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE profiles
        SET name = $1, wallet_address = $2, updated_at = $3
        WHERE id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name,
		m.WalletAddress,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update profile query: %w", classifyWriteErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	query := `
        UPDATE profiles
        SET deleted_at = $1, updated_at = $1
        WHERE id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark profile as deleted: %w", classifyWriteErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
