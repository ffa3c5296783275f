package role

import (
	"context"
	"fmt"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/pkg/validate"
	"github.com/google/uuid"
)

const (
	fieldName          = "name"
	fieldKey           = "key"
	fieldPermissionIDs = "permission_ids"
)

type Service interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	GetRole(ctx context.Context, roleID string) (*domain.Role, error)
	CreateRole(ctx context.Context, input domain.RoleInput) (*domain.Role, error)
	UpdateRole(ctx context.Context, roleID string, input domain.RoleInput) (*domain.Role, error)
	DeleteRole(ctx context.Context, roleID string) error

	ListPermissions(ctx context.Context) ([]domain.Permission, error)
	CreatePermission(ctx context.Context, input domain.PermissionInput) (*domain.Permission, error)
	DeletePermission(ctx context.Context, permissionID string) error

	// Resolve loads the permission objects behind each role id.
	Resolve(ctx context.Context, roleIDs []string) ([]domain.Role, error)
}

type roleStore interface {
	Put(ctx context.Context, r *domain.Role) error
	Get(ctx context.Context, roleID string) (*domain.Role, error)
	Scan(ctx context.Context) ([]domain.Role, error)
	Update(ctx context.Context, roleID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, roleID string) error
}

type permissionStore interface {
	Put(ctx context.Context, p *domain.Permission) error
	Get(ctx context.Context, permissionID string) (*domain.Permission, error)
	Scan(ctx context.Context) ([]domain.Permission, error)
	HardDelete(ctx context.Context, permissionID string) error
}

type service struct {
	roles       roleStore
	permissions permissionStore
}

type ServiceDeps struct {
	Roles       roleStore
	Permissions permissionStore
}

func NewService(deps ServiceDeps) Service {
	return &service{roles: deps.Roles, permissions: deps.Permissions}
}

func (s *service) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		if err := s.attachPermissions(ctx, &roles[i]); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

func (s *service) GetRole(ctx context.Context, roleID string) (*domain.Role, error) {
	r, err := s.roles.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if err := s.attachPermissions(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) CreateRole(ctx context.Context, input domain.RoleInput) (*domain.Role, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	existing, err := s.roles.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.Key == input.Key {
			return nil, fmt.Errorf("role key already exists: %w", domain.ErrConflict)
		}
	}
	if err := s.checkPermissionIDs(ctx, input.PermissionIDs); err != nil {
		return nil, err
	}
	r := &domain.Role{
		RoleID:        uuid.NewString(),
		Name:          input.Name,
		Key:           input.Key,
		PermissionIDs: input.PermissionIDs,
	}
	if err := s.roles.Put(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) UpdateRole(ctx context.Context, roleID string, input domain.RoleInput) (*domain.Role, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if err := s.checkPermissionIDs(ctx, input.PermissionIDs); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		fieldName:          input.Name,
		fieldKey:           input.Key,
		fieldPermissionIDs: input.PermissionIDs,
	}
	if err := s.roles.Update(ctx, roleID, updates); err != nil {
		return nil, err
	}
	return s.GetRole(ctx, roleID)
}

func (s *service) DeleteRole(ctx context.Context, roleID string) error {
	return s.roles.HardDelete(ctx, roleID)
}

func (s *service) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	return s.permissions.Scan(ctx)
}

func (s *service) CreatePermission(ctx context.Context, input domain.PermissionInput) (*domain.Permission, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	existing, err := s.permissions.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Resource == input.Resource && p.Action == input.Action {
			return nil, fmt.Errorf("permission already exists: %w", domain.ErrConflict)
		}
	}
	p := &domain.Permission{
		PermissionID: uuid.NewString(),
		Resource:     input.Resource,
		Action:       input.Action,
	}
	if err := s.permissions.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeletePermission(ctx context.Context, permissionID string) error {
	roles, err := s.roles.Scan(ctx)
	if err != nil {
		return err
	}
	for _, r := range roles {
		for _, pid := range r.PermissionIDs {
			if pid == permissionID {
				return fmt.Errorf("permission is in use by role %s: %w", r.Key, domain.ErrConflict)
			}
		}
	}
	return s.permissions.HardDelete(ctx, permissionID)
}

func (s *service) Resolve(ctx context.Context, roleIDs []string) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(roleIDs))
	for _, rid := range roleIDs {
		r, err := s.GetRole(ctx, rid)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *r)
	}
	return roles, nil
}

func (s *service) attachPermissions(ctx context.Context, r *domain.Role) error {
	perms := make([]domain.Permission, 0, len(r.PermissionIDs))
	for _, pid := range r.PermissionIDs {
		p, err := s.permissions.Get(ctx, pid)
		if err != nil {
			// dangling id, skip rather than fail the whole read
			continue
		}
		perms = append(perms, *p)
	}
	r.Permissions = perms
	return nil
}

func (s *service) checkPermissionIDs(ctx context.Context, ids []string) error {
	for _, pid := range ids {
		if _, err := s.permissions.Get(ctx, pid); err != nil {
			return fmt.Errorf("unknown permission id %s: %w", pid, domain.ErrBadRequest)
		}
	}
	return nil
}
