package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/infrastructure/google"
	"github.com/go-cms-api/internal/pkg/id"
	"github.com/go-cms-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type ExistenceRequest struct {
	Identifier string         `json:"identifier" validate:"required"`
	Type       domain.Purpose `json:"type" validate:"required"`
	Method     string         `json:"method"`
}

// TokenPair is what every successful authentication hands back. For an
// identity created on the fly, NeedUsername is set and no tokens are issued.
type TokenPair struct {
	PublicID     string       `json:"publicId,omitempty"`
	NeedUsername bool         `json:"needUsername,omitempty"`
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         *domain.User `json:"user,omitempty"`
}

// UserStore is the slice of the user directory this service needs.
type UserStore interface {
	Get(ctx context.Context, publicID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, publicID string, updates map[string]interface{}) error
}

// TokenProvider signs and checks the two credential kinds.
type TokenProvider interface {
	SignAccess(userID string, roles []string) (string, error)
	SignRefresh(userID string) (string, error)
	VerifyRefresh(token string) (userID string, err error)
}

// GoogleOAuth drives the external consent flow.
type GoogleOAuth interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*google.Payload, error)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	UserExists(ctx context.Context, req ExistenceRequest) (bool, error)
	GoogleAuthURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}

type ServiceDeps struct {
	Users  UserStore
	Tokens TokenProvider
	Google GoogleOAuth
}

type service struct {
	users  UserStore
	tokens TokenProvider
	google GoogleOAuth
}

func NewService(deps ServiceDeps) Service {
	return &service{users: deps.Users, tokens: deps.Tokens, google: deps.Google}
}

// Login resolves the identity by phone, email or username. An unknown
// identity is registered on the spot as a minimal record and the caller is
// told to finish setup; a known identity with a password set must present it.
func (s *service) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	u, err := s.resolveIdentifier(ctx, req.Identity)
	if errors.Is(err, domain.ErrNotFound) {
		created, err := s.createMinimalUser(ctx, req.Identity)
		if err != nil {
			return nil, err
		}
		return &TokenPair{PublicID: created.PublicID, NeedUsername: true}, nil
	}
	if err != nil {
		return nil, err
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	if u.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			return nil, fmt.Errorf("invalid password: %w", domain.ErrBadRequest)
		}
	}
	return s.issue(u)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token required: %w", domain.ErrUnauthorized)
	}
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("unknown user: %w", domain.ErrUnauthorized)
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	return s.issue(u)
}

func (s *service) UserExists(ctx context.Context, req ExistenceRequest) (bool, error) {
	if err := validate.Struct(req); err != nil {
		return false, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if !req.Type.Valid() {
		return false, fmt.Errorf("unsupported type %q: %w", req.Type, domain.ErrBadRequest)
	}
	_, err := s.resolveIdentifier(ctx, req.Identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) GoogleAuthURL(state string) string {
	if s.google == nil {
		return ""
	}
	return s.google.AuthCodeURL(state)
}

func (s *service) GoogleCallback(ctx context.Context, code string) (*TokenPair, error) {
	if s.google == nil {
		return nil, fmt.Errorf("google sign-in not configured: %w", domain.ErrBadRequest)
	}
	if code == "" {
		return nil, fmt.Errorf("authorization code required: %w", domain.ErrBadRequest)
	}
	payload, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	if !payload.EmailVerified {
		return nil, fmt.Errorf("google account email not verified: %w", domain.ErrForbidden)
	}

	u, err := s.users.GetByEmail(ctx, payload.Email)
	if errors.Is(err, domain.ErrNotFound) {
		now := time.Now().UTC()
		email := payload.Email
		u = &domain.User{
			PublicID:     id.New(),
			Email:        &email,
			FullName:     strings.TrimSpace(payload.FirstName + " " + payload.LastName),
			AuthProvider: "google",
			Verified:     true,
			Enable:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Put(ctx, u); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	if !u.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}
	return s.issue(u)
}

// ChangePassword requires the current password only when one is set; an
// account that came in through a one-time code sets its first password here.
func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u.PasswordHash != "" &&
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, userID, map[string]interface{}{
		domain.FieldUserPasswordHash: string(hash),
		domain.FieldUserVerified:     true,
	})
}

func (s *service) issue(u *domain.User) (*TokenPair, error) {
	access, err := s.tokens.SignAccess(u.PublicID, u.RoleIDs)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.SignRefresh(u.PublicID)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return &TokenPair{PublicID: u.PublicID, AccessToken: access, RefreshToken: refresh, User: u}, nil
}

func (s *service) createMinimalUser(ctx context.Context, identity string) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		PublicID:     id.New(),
		AuthProvider: "password",
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch {
	case strings.Contains(identity, "@"):
		u.Email = &identity
	case strings.HasPrefix(identity, "+") || isDigits(identity):
		u.Phone = &identity
	default:
		u.Username = &identity
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// resolveIdentifier routes the lookup by identifier shape: addresses with an
// "@" are emails, leading "+" or digits are phone numbers, everything else is
// a username.
func (s *service) resolveIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	switch {
	case strings.Contains(identifier, "@"):
		return s.users.GetByEmail(ctx, identifier)
	case strings.HasPrefix(identifier, "+") || isDigits(identifier):
		return s.users.GetByPhone(ctx, identifier)
	default:
		return s.users.GetByUsername(ctx, identifier)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
