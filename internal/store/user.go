package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pius706975/poolseek-be/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, firebase_id, google_id, image,
		role_id, phone_number, password, otp_code, otp_expiration, is_verified,
		created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.ID = uuid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `
		INSERT INTO users (id, email, first_name, last_name, firebase_id, google_id, image,
			role_id, phone_number, password, otp_code, otp_expiration, is_verified,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.FirebaseID,
		user.GoogleID,
		user.Image,
		user.RoleID,
		user.PhoneNumber,
		user.Password,
		user.OTPCode,
		user.OTPExpiration,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		return types.User{}, mapDBError(err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	user.UpdatedAt = time.Now()

	const query = `
		UPDATE users
		SET email = $1,
			first_name = $2,
			last_name = $3,
			firebase_id = $4,
			google_id = $5,
			image = $6,
			role_id = $7,
			phone_number = $8,
			password = $9,
			otp_code = $10,
			otp_expiration = $11,
			is_verified = $12,
			updated_at = $13
		WHERE id = $14`
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.FirebaseID,
		user.GoogleID,
		user.Image,
		user.RoleID,
		user.PhoneNumber,
		user.Password,
		user.OTPCode,
		user.OTPExpiration,
		user.IsVerified,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return types.User{}, mapDBError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.User{}, err
	}
	if affected == 0 {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (types.User, error) {
	var user types.User
	var firebaseID, googleID, image, phoneNumber, otpCode sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&firebaseID,
		&googleID,
		&image,
		&user.RoleID,
		&phoneNumber,
		&user.Password,
		&otpCode,
		&user.OTPExpiration,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	user.FirebaseID = firebaseID.String
	user.GoogleID = googleID.String
	user.Image = image.String
	user.PhoneNumber = phoneNumber.String
	user.OTPCode = otpCode.String
	return user, nil
}
