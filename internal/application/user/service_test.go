package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-cms-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) Get(ctx context.Context, publicID string) (*domain.User, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) Scan(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, publicID string, updates map[string]interface{}) error {
	return m.Called(ctx, publicID, updates).Error(0)
}

func (m *mockUserStore) SoftDelete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

type mockPreferenceStore struct{ mock.Mock }

func (m *mockPreferenceStore) Put(ctx context.Context, p *domain.UserPreference) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPreferenceStore) Get(ctx context.Context, userID string) (*domain.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPreference), args.Error(1)
}

type mockRoleResolver struct{ mock.Mock }

func (m *mockRoleResolver) Resolve(ctx context.Context, roleIDs []string) ([]domain.Role, error) {
	args := m.Called(ctx, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func strptr(s string) *string { return &s }

func notFound() error { return fmt.Errorf("user not found: %w", domain.ErrNotFound) }

func TestCreate_HashesPassword(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, notFound())

	var stored *domain.User
	repo.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		snapshot := *u
		stored = &snapshot
		return true
	})).Return(nil)

	svc := NewService(ServiceDeps{UserRepo: repo})
	u, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email:    strptr("new@example.com"),
		Password: strptr("hunter2222"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, u.PublicID)
	assert.Empty(t, u.PasswordHash)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2222")))
	assert.Equal(t, "password", stored.AuthProvider)
	assert.True(t, stored.Enable)
}

func TestCreate_RequiresSomeIdentifier(t *testing.T) {
	svc := NewService(ServiceDeps{UserRepo: new(mockUserStore)})
	_, err := svc.Create(context.Background(), domain.CreateUserRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{PublicID: "u1"}, nil)

	svc := NewService(ServiceDeps{UserRepo: repo})
	_, err := svc.Create(context.Background(), domain.CreateUserRequest{Email: strptr("taken@example.com")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestList_StripsPasswordHashes(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("Scan", mock.Anything).Return([]domain.User{
		{PublicID: "u1", PasswordHash: "x"},
		{PublicID: "u2", PasswordHash: "y"},
	}, nil)

	svc := NewService(ServiceDeps{UserRepo: repo})
	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestGet_ResolvesRoles(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("Get", mock.Anything, "u1").
		Return(&domain.User{PublicID: "u1", RoleIDs: []string{"r1"}}, nil)

	roles := new(mockRoleResolver)
	roles.On("Resolve", mock.Anything, []string{"r1"}).
		Return([]domain.Role{{RoleID: "r1", Key: "editor"}}, nil)

	svc := NewService(ServiceDeps{UserRepo: repo, Roles: roles})
	u, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, u.Roles, 1)
	assert.Equal(t, "editor", u.Roles[0].Key)
}

func TestUpdate_UsernameTakenByAnotherUser(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByUsername", mock.Anything, "sam").
		Return(&domain.User{PublicID: "other"}, nil)

	svc := NewService(ServiceDeps{UserRepo: repo})
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Username: strptr("sam")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_SameUserKeepsUsername(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByUsername", mock.Anything, "sam").
		Return(&domain.User{PublicID: "u1"}, nil)
	repo.On("Update", mock.Anything, "u1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates[domain.FieldUserUsername] == "sam"
	})).Return(nil)
	repo.On("Get", mock.Anything, "u1").
		Return(&domain.User{PublicID: "u1", Username: strptr("sam")}, nil)

	svc := NewService(ServiceDeps{UserRepo: repo})
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Username: strptr("sam")})
	require.NoError(t, err)
	assert.Equal(t, "sam", *u.Username)
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("SoftDelete", mock.Anything, "u1").Return(nil)

	svc := NewService(ServiceDeps{UserRepo: repo})
	require.NoError(t, svc.Delete(context.Background(), "u1"))
	repo.AssertExpectations(t)
}

func TestGetPreferences_DefaultsWhenMissing(t *testing.T) {
	prefs := new(mockPreferenceStore)
	prefs.On("Get", mock.Anything, "u1").
		Return(nil, fmt.Errorf("preferences not found: %w", domain.ErrNotFound))

	svc := NewService(ServiceDeps{UserRepo: new(mockUserStore), PreferenceRepo: prefs, DefaultLanguage: "fa"})
	p, err := svc.GetPreferences(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "fa", p.Language)
}

func TestSetPreferences_MergesExisting(t *testing.T) {
	prefs := new(mockPreferenceStore)
	prefs.On("Get", mock.Anything, "u1").
		Return(&domain.UserPreference{UserID: "u1", Language: "fa", Theme: "light"}, nil)

	var saved *domain.UserPreference
	prefs.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.UserPreference) bool {
		saved = p
		return true
	})).Return(nil)

	svc := NewService(ServiceDeps{UserRepo: new(mockUserStore), PreferenceRepo: prefs, DefaultLanguage: "fa"})
	p, err := svc.SetPreferences(context.Background(), "u1", domain.UserPreferenceInput{Theme: strptr("dark")})
	require.NoError(t, err)

	assert.Equal(t, "dark", p.Theme)
	assert.Equal(t, "fa", p.Language)
	require.NotNil(t, saved)
	assert.False(t, saved.UpdatedAt.IsZero())
}
