package domain

import "time"

// Role enumerates account authorization levels.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Account is a user of the desk itself. Secrets are stored only as
// bcrypt hashes.
type Account struct {
	ID         string
	Username   string
	Email      string
	SecretHash string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
