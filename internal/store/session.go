package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pius706975/poolseek-be/types"
)

// SessionRepository handles persistence for per-device refresh tokens.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetByDevice(ctx context.Context, userID, deviceID string) (types.Session, error) {
	const query = `
		SELECT id, user_id, device_id, device_name, device_model, refresh_token,
			refresh_token_expiration, created_at, updated_at
		FROM refresh_tokens
		WHERE user_id = $1 AND device_id = $2`
	var session types.Session
	err := r.db.QueryRowContext(ctx, query, userID, deviceID).Scan(
		&session.ID,
		&session.UserID,
		&session.DeviceID,
		&session.DeviceName,
		&session.DeviceModel,
		&session.RefreshToken,
		&session.RefreshTokenExpiration,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Session{}, ErrNotFound
		}
		return types.Session{}, err
	}
	return session, nil
}

// Upsert inserts the session row for (user_id, device_id) or, when one
// already exists, overwrites its token, device metadata, and expiration. The
// conflict target is the unique (user_id, device_id) index, so concurrent
// sign-ins from the same device cannot produce duplicate rows.
func (r *SessionRepository) Upsert(ctx context.Context, session types.Session) (types.Session, error) {
	now := time.Now()
	session.ID = uuid.New().String()
	session.CreatedAt = now
	session.UpdatedAt = now

	const query = `
		INSERT INTO refresh_tokens (id, user_id, device_id, device_name, device_model,
			refresh_token, refresh_token_expiration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, device_id) DO UPDATE
		SET refresh_token = EXCLUDED.refresh_token,
			device_name = EXCLUDED.device_name,
			device_model = EXCLUDED.device_model,
			refresh_token_expiration = EXCLUDED.refresh_token_expiration,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.DeviceID,
		session.DeviceName,
		session.DeviceModel,
		session.RefreshToken,
		session.RefreshTokenExpiration,
		session.CreatedAt,
		session.UpdatedAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return types.Session{}, mapDBError(err)
	}
	return session, nil
}

func (r *SessionRepository) DeleteByDevice(ctx context.Context, userID, deviceID string) error {
	const query = `DELETE FROM refresh_tokens WHERE user_id = $1 AND device_id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, deviceID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
