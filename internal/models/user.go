package models

import "time"

// User is the database row shape for the profiles table.
type User struct {
	ID            string     `db:"id"`
	Email         string     `db:"email"`
	Name          string     `db:"name"`
	Role          string     `db:"role"`
	WalletAddress *string    `db:"wallet_address"`
	PasswordHash  string     `db:"password_hash"`
	AuthProvider  *string    `db:"auth_provider"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}
