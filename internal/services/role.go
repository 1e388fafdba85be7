package services

import (
	"context"
	"errors"

	"github.com/pius706975/poolseek-be/internal/apperr"
	"github.com/pius706975/poolseek-be/internal/store"
	"github.com/pius706975/poolseek-be/internal/validate"
	"github.com/pius706975/poolseek-be/types"
)

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	Create(ctx context.Context, role types.Role) (types.Role, error)
	List(ctx context.Context) ([]types.Role, error)
	GetByID(ctx context.Context, id int) (types.Role, error)
	Delete(ctx context.Context, id int) error
}

// RoleService encapsulates role use-cases. Roles are plain lookup records;
// the only rule is name uniqueness.
type RoleService struct {
	repo RoleRepository
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{repo: repo}
}

func (s *RoleService) Create(ctx context.Context, roleName string) (types.Role, error) {
	if err := validate.Required(roleName, "Role name is required"); err != nil {
		return types.Role{}, err
	}

	role, err := s.repo.Create(ctx, types.Role{RoleName: roleName})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.Role{}, apperr.Conflictf("Role %s already exists", roleName)
		}
		return types.Role{}, err
	}
	return role, nil
}

func (s *RoleService) List(ctx context.Context) ([]types.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, apperr.NotFound("Roles not found")
	}
	return roles, nil
}

func (s *RoleService) GetByID(ctx context.Context, id int) (types.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Role{}, apperr.NotFound("Role not found")
		}
		return types.Role{}, err
	}
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
