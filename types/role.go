package types

import "time"

// Role is a lookup entity referenced by users.
type Role struct {
	// ID is the unique identifier of the role.
	ID int `json:"id" db:"id"`

	// RoleName is the unique name of the role (e.g., "admin", "user").
	RoleName string `json:"role_name" db:"role_name"`

	// CreatedAt is the timestamp when the role was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the role.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Default role IDs seeded by the migrations.
const (
	RoleAdmin = 1
	RoleUser  = 2
)
