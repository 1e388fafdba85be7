package types

import (
	"database/sql"
	"time"
)

// User represents an account in the system.
// It contains identity, verification state, and audit metadata.
type User struct {
	// ID is the unique identifier of the user (UUID).
	ID string `json:"id" db:"id"`

	// Email is the user's email address, unique across all users.
	Email string `json:"email" db:"email"`

	// FirstName is the user's given name.
	FirstName string `json:"first_name" db:"first_name"`

	// LastName is the user's family name.
	LastName string `json:"last_name" db:"last_name"`

	// FirebaseID references an external Firebase identity, if any.
	FirebaseID string `json:"firebase_id,omitempty" db:"firebase_id"`

	// GoogleID references an external Google identity, if any.
	GoogleID string `json:"google_id,omitempty" db:"google_id"`

	// Image is the object key of the user's profile image, if any.
	Image string `json:"image,omitempty" db:"image"`

	// RoleID references the user's role.
	RoleID int `json:"role_id" db:"role_id"`

	// PhoneNumber is the user's phone number, if any.
	PhoneNumber string `json:"phone_number,omitempty" db:"phone_number"`

	// Password stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	Password string `json:"-" db:"password"`

	// OTPCode is the pending one-time code, empty when none is pending.
	OTPCode string `json:"-" db:"otp_code"`

	// OTPExpiration is the deadline for consuming OTPCode.
	OTPExpiration sql.NullTime `json:"-" db:"otp_expiration"`

	// IsVerified reports whether the user completed email verification.
	IsVerified bool `json:"is_verified" db:"is_verified"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
