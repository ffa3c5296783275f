package role

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-cms-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRoleStore struct{ mock.Mock }

func (m *mockRoleStore) Put(ctx context.Context, r *domain.Role) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRoleStore) Get(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *mockRoleStore) Scan(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func (m *mockRoleStore) Update(ctx context.Context, roleID string, updates map[string]interface{}) error {
	return m.Called(ctx, roleID, updates).Error(0)
}

func (m *mockRoleStore) HardDelete(ctx context.Context, roleID string) error {
	return m.Called(ctx, roleID).Error(0)
}

type mockPermissionStore struct{ mock.Mock }

func (m *mockPermissionStore) Put(ctx context.Context, p *domain.Permission) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPermissionStore) Get(ctx context.Context, permissionID string) (*domain.Permission, error) {
	args := m.Called(ctx, permissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

func (m *mockPermissionStore) Scan(ctx context.Context) ([]domain.Permission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Permission), args.Error(1)
}

func (m *mockPermissionStore) HardDelete(ctx context.Context, permissionID string) error {
	return m.Called(ctx, permissionID).Error(0)
}

func newTestService() (*mockRoleStore, *mockPermissionStore, Service) {
	roles := new(mockRoleStore)
	perms := new(mockPermissionStore)
	return roles, perms, NewService(ServiceDeps{Roles: roles, Permissions: perms})
}

func TestCreateRole_DuplicateKeyConflicts(t *testing.T) {
	roles, _, svc := newTestService()
	roles.On("Scan", mock.Anything).
		Return([]domain.Role{{RoleID: "r1", Key: "admin"}}, nil)

	_, err := svc.CreateRole(context.Background(), domain.RoleInput{Name: "Admin", Key: "admin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	roles.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreateRole_RejectsUnknownPermissionIDs(t *testing.T) {
	roles, perms, svc := newTestService()
	roles.On("Scan", mock.Anything).Return([]domain.Role{}, nil)
	perms.On("Get", mock.Anything, "ghost").
		Return(nil, fmt.Errorf("permission not found: %w", domain.ErrNotFound))

	_, err := svc.CreateRole(context.Background(), domain.RoleInput{
		Name: "Editor", Key: "editor", PermissionIDs: []string{"ghost"},
	})
	require.Error(t, err)
	roles.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestGetRole_SkipsDanglingPermissions(t *testing.T) {
	roles, perms, svc := newTestService()
	roles.On("Get", mock.Anything, "r1").
		Return(&domain.Role{RoleID: "r1", Key: "editor", PermissionIDs: []string{"p1", "gone"}}, nil)
	perms.On("Get", mock.Anything, "p1").
		Return(&domain.Permission{PermissionID: "p1", Resource: "pages", Action: "write"}, nil)
	perms.On("Get", mock.Anything, "gone").
		Return(nil, fmt.Errorf("permission not found: %w", domain.ErrNotFound))

	r, err := svc.GetRole(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, r.Permissions, 1)
	assert.Equal(t, "pages", r.Permissions[0].Resource)
}

func TestDeletePermission_RefusesWhenInUse(t *testing.T) {
	roles, perms, svc := newTestService()
	roles.On("Scan", mock.Anything).
		Return([]domain.Role{{RoleID: "r1", Key: "editor", PermissionIDs: []string{"p1"}}}, nil)

	err := svc.DeletePermission(context.Background(), "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	perms.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

func TestCreatePermission_DuplicatePairConflicts(t *testing.T) {
	_, perms, svc := newTestService()
	perms.On("Scan", mock.Anything).
		Return([]domain.Permission{{PermissionID: "p1", Resource: "pages", Action: "write"}}, nil)

	_, err := svc.CreatePermission(context.Background(), domain.PermissionInput{Resource: "pages", Action: "write"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestResolve_LoadsEachRole(t *testing.T) {
	roles, perms, svc := newTestService()
	roles.On("Get", mock.Anything, "r1").
		Return(&domain.Role{RoleID: "r1", Key: "admin"}, nil)
	_ = perms

	resolved, err := svc.Resolve(context.Background(), []string{"r1"})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "admin", resolved[0].Key)
}
