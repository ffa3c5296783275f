package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/infrastructure/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, publicID string) (*domain.User, error) {
	args := m.Called(ctx, publicID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Update(ctx context.Context, publicID string, updates map[string]interface{}) error {
	return m.Called(ctx, publicID, updates).Error(0)
}

type mockTokenProvider struct{ mock.Mock }

func (m *mockTokenProvider) SignAccess(userID string, roles []string) (string, error) {
	args := m.Called(userID, roles)
	return args.String(0), args.Error(1)
}
func (m *mockTokenProvider) SignRefresh(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}
func (m *mockTokenProvider) VerifyRefresh(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type mockGoogleOAuth struct{ mock.Mock }

func (m *mockGoogleOAuth) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}
func (m *mockGoogleOAuth) Exchange(ctx context.Context, code string) (*google.Payload, error) {
	args := m.Called(ctx, code)
	if p, _ := args.Get(0).(*google.Payload); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- builder ---

func newService(us *mockUserStore, tk *mockTokenProvider, g *mockGoogleOAuth) Service {
	return NewService(ServiceDeps{Users: us, Tokens: tk, Google: g})
}

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(h)
}

func strPtr(s string) *string { return &s }

// --- Login ---

func TestLogin_MissingIdentity(t *testing.T) {
	svc := newService(nil, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestLogin_UnknownIdentityCreatesMinimalUser(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByPhone", mock.Anything, "+15551234567").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Phone != nil && *u.Phone == "+15551234567" && u.Enable
	})).Return(nil)

	svc := newService(us, nil, nil)
	pair, err := svc.Login(context.Background(), LoginRequest{Identity: "+15551234567"})

	require.NoError(t, err)
	assert.True(t, pair.NeedUsername)
	assert.NotEmpty(t, pair.PublicID)
	assert.Empty(t, pair.AccessToken)
	us.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		PublicID:     "u1",
		Email:        strPtr("a@b.com"),
		PasswordHash: hashOf(t, "correct"),
		Enable:       true,
	}, nil)

	svc := newService(us, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Identity: "a@b.com", Password: "wrong"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestLogin_DisabledAccount(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		PublicID:     "u1",
		PasswordHash: hashOf(t, "secret"),
		Enable:       false,
	}, nil)

	svc := newService(us, nil, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Identity: "a@b.com", Password: "secret"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestLogin_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	tk := &mockTokenProvider{}

	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{
		PublicID:     "u1",
		Email:        strPtr("a@b.com"),
		PasswordHash: hashOf(t, "secret"),
		RoleIDs:      []string{"r1"},
		Enable:       true,
	}, nil)
	tk.On("SignAccess", "u1", []string{"r1"}).Return("access", nil)
	tk.On("SignRefresh", "u1").Return("refresh", nil)

	svc := newService(us, tk, nil)
	pair, err := svc.Login(context.Background(), LoginRequest{Identity: "a@b.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
	assert.Empty(t, pair.User.PasswordHash)
	assert.False(t, pair.NeedUsername)
}

func TestLogin_PasswordlessAccountSkipsPasswordCheck(t *testing.T) {
	us := &mockUserStore{}
	tk := &mockTokenProvider{}

	us.On("GetByPhone", mock.Anything, "+15551234567").Return(&domain.User{
		PublicID: "u2",
		Phone:    strPtr("+15551234567"),
		Enable:   true,
	}, nil)
	tk.On("SignAccess", "u2", mock.Anything).Return("access", nil)
	tk.On("SignRefresh", "u2").Return("refresh", nil)

	svc := newService(us, tk, nil)
	pair, err := svc.Login(context.Background(), LoginRequest{Identity: "+15551234567"})

	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
}

func TestLogin_UsernameIdentifierRouting(t *testing.T) {
	us := &mockUserStore{}
	tk := &mockTokenProvider{}

	us.On("GetByUsername", mock.Anything, "editor1").Return(&domain.User{
		PublicID:     "u3",
		Username:     strPtr("editor1"),
		PasswordHash: hashOf(t, "secret"),
		Enable:       true,
	}, nil)
	tk.On("SignAccess", "u3", mock.Anything).Return("access", nil)
	tk.On("SignRefresh", "u3").Return("refresh", nil)

	svc := newService(us, tk, nil)
	_, err := svc.Login(context.Background(), LoginRequest{Identity: "editor1", Password: "secret"})

	require.NoError(t, err)
	us.AssertExpectations(t)
}

// --- Refresh ---

func TestRefresh_InvalidToken(t *testing.T) {
	tk := &mockTokenProvider{}
	tk.On("VerifyRefresh", "bad").Return("", errors.New("expired"))

	svc := newService(nil, tk, nil)
	_, err := svc.Refresh(context.Background(), "bad")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestRefresh_MissingToken(t *testing.T) {
	svc := newService(nil, nil, nil)
	_, err := svc.Refresh(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestRefresh_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	tk := &mockTokenProvider{}

	tk.On("VerifyRefresh", "good").Return("u1", nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{PublicID: "u1", Enable: true}, nil)
	tk.On("SignAccess", "u1", mock.Anything).Return("new-access", nil)
	tk.On("SignRefresh", "u1").Return("new-refresh", nil)

	svc := newService(us, tk, nil)
	pair, err := svc.Refresh(context.Background(), "good")

	require.NoError(t, err)
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
}

// --- UserExists ---

func TestUserExists(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(&domain.User{PublicID: "u1"}, nil)
	us.On("GetByEmail", mock.Anything, "x@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(us, nil, nil)

	found, err := svc.UserExists(context.Background(), ExistenceRequest{
		Identifier: "a@b.com", Type: domain.PurposeLogin,
	})
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.UserExists(context.Background(), ExistenceRequest{
		Identifier: "x@x.com", Type: domain.PurposeRegister,
	})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserExists_BadType(t *testing.T) {
	svc := newService(nil, nil, nil)
	_, err := svc.UserExists(context.Background(), ExistenceRequest{
		Identifier: "a@b.com", Type: "recover",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Google ---

func TestGoogleCallback_CreatesUserOnFirstLogin(t *testing.T) {
	us := &mockUserStore{}
	tk := &mockTokenProvider{}
	g := &mockGoogleOAuth{}

	g.On("Exchange", mock.Anything, "auth-code").Return(&google.Payload{
		Sub:           "g-sub",
		Email:         "new@gmail.com",
		EmailVerified: true,
		FirstName:     "Ada",
		LastName:      "Lovelace",
	}, nil)
	us.On("GetByEmail", mock.Anything, "new@gmail.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email != nil && *u.Email == "new@gmail.com" &&
			u.AuthProvider == "google" && u.FullName == "Ada Lovelace" && u.Verified
	})).Return(nil)
	tk.On("SignAccess", mock.Anything, mock.Anything).Return("access", nil)
	tk.On("SignRefresh", mock.Anything).Return("refresh", nil)

	svc := newService(us, tk, g)
	pair, err := svc.GoogleCallback(context.Background(), "auth-code")

	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	us.AssertExpectations(t)
}

func TestGoogleCallback_UnverifiedEmailRejected(t *testing.T) {
	g := &mockGoogleOAuth{}
	g.On("Exchange", mock.Anything, "auth-code").Return(&google.Payload{
		Email:         "sketchy@gmail.com",
		EmailVerified: false,
	}, nil)

	svc := newService(nil, nil, g)
	_, err := svc.GoogleCallback(context.Background(), "auth-code")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// --- ChangePassword ---

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{
		PublicID:     "u1",
		PasswordHash: hashOf(t, "current"),
	}, nil)

	svc := newService(us, nil, nil)
	err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestChangePassword_FirstPasswordWithoutCurrent(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{PublicID: "u1"}, nil)
	us.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		_, hasHash := m[domain.FieldUserPasswordHash]
		verified, _ := m[domain.FieldUserVerified].(bool)
		return hasHash && verified
	})).Return(nil)

	svc := newService(us, nil, nil)
	err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		NewPassword: "newpassword123",
	})

	require.NoError(t, err)
	us.AssertExpectations(t)
}

func TestChangePassword_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{
		PublicID:     "u1",
		PasswordHash: hashOf(t, "current"),
	}, nil)
	us.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		h, ok := m[domain.FieldUserPasswordHash].(string)
		if !ok {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(h), []byte("newpassword123")) == nil
	})).Return(nil)

	svc := newService(us, nil, nil)
	err := svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		CurrentPassword: "current",
		NewPassword:     "newpassword123",
	})

	require.NoError(t, err)
	us.AssertExpectations(t)
}
