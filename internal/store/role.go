package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/pius706975/poolseek-be/types"
)

// RoleRepository handles persistence for roles.
type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role types.Role) (types.Role, error) {
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now

	const query = `
		INSERT INTO roles (role_name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		role.RoleName,
		role.CreatedAt,
		role.UpdatedAt,
	).Scan(&role.ID); err != nil {
		return types.Role{}, mapDBError(err)
	}
	return role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]types.Role, error) {
	const query = `
		SELECT id, role_name, created_at, updated_at
		FROM roles
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []types.Role
	for rows.Next() {
		var role types.Role
		if err := rows.Scan(&role.ID, &role.RoleName, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) GetByID(ctx context.Context, id int) (types.Role, error) {
	const query = `
		SELECT id, role_name, created_at, updated_at
		FROM roles
		WHERE id = $1`
	var role types.Role
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&role.ID,
		&role.RoleName,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Role{}, ErrNotFound
		}
		return types.Role{}, err
	}
	return role, nil
}

func (r *RoleRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM roles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
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
