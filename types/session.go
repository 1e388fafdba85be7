package types

import "time"

// Session is the stored refresh-token association for one (user, device) pair.
// At most one row exists per pair; a repeat sign-in on the same device
// overwrites the token instead of adding a row.
type Session struct {
	// ID is the unique identifier of the session (UUID).
	ID string `json:"id" db:"id"`

	// UserID references the owning user.
	UserID string `json:"user_id" db:"user_id"`

	// DeviceID identifies the device this session belongs to.
	DeviceID string `json:"device_id" db:"device_id"`

	// DeviceName is the human-readable device name.
	DeviceName string `json:"device_name" db:"device_name"`

	// DeviceModel is the device hardware model.
	DeviceModel string `json:"device_model" db:"device_model"`

	// RefreshToken is the opaque long-lived credential for this device.
	RefreshToken string `json:"-" db:"refresh_token"`

	// RefreshTokenExpiration is the deadline after which the token is rejected.
	RefreshTokenExpiration time.Time `json:"refresh_token_expiration" db:"refresh_token_expiration"`

	// CreatedAt is the timestamp when the session row was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent token rotation.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
