package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/pkg/id"
	"github.com/go-cms-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, publicID string) (*domain.User, error)
	Update(ctx context.Context, publicID string, req domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, publicID string) error

	GetPreferences(ctx context.Context, publicID string) (*domain.UserPreference, error)
	SetPreferences(ctx context.Context, publicID string, input domain.UserPreferenceInput) (*domain.UserPreference, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, publicID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Scan(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, publicID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, publicID string) error
}

type preferenceStore interface {
	Put(ctx context.Context, p *domain.UserPreference) error
	Get(ctx context.Context, userID string) (*domain.UserPreference, error)
}

type roleResolver interface {
	Resolve(ctx context.Context, roleIDs []string) ([]domain.Role, error)
}

type service struct {
	repo        userStore
	preferences preferenceStore
	roles       roleResolver
	defaultLang string
}

type ServiceDeps struct {
	UserRepo        userStore
	PreferenceRepo  preferenceStore
	Roles           roleResolver
	DefaultLanguage string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.UserRepo,
		preferences: deps.PreferenceRepo,
		roles:       deps.Roles,
		defaultLang: deps.DefaultLanguage,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if req.Email == nil && req.Phone == nil && req.Username == nil {
		return nil, fmt.Errorf("email, phone or username required: %w", domain.ErrBadRequest)
	}
	if req.Username != nil {
		if _, err := s.repo.GetByUsername(ctx, *req.Username); err == nil {
			return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
		}
	}
	if req.Email != nil {
		if _, err := s.repo.GetByEmail(ctx, *req.Email); err == nil {
			return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
	}
	if req.Phone != nil {
		if _, err := s.repo.GetByPhone(ctx, *req.Phone); err == nil {
			return nil, fmt.Errorf("phone already registered: %w", domain.ErrConflict)
		}
	}

	now := time.Now().UTC()
	u := &domain.User{
		PublicID:     id.New(),
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		RoleIDs:      req.RoleIDs,
		AuthProvider: "password",
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *service) Get(ctx context.Context, publicID string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if s.roles != nil && len(u.RoleIDs) > 0 {
		roles, err := s.roles.Resolve(ctx, u.RoleIDs)
		if err == nil {
			u.Roles = roles
		}
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *service) Update(ctx context.Context, publicID string, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	updates := map[string]interface{}{}
	if req.Username != nil {
		if existing, err := s.repo.GetByUsername(ctx, *req.Username); err == nil && existing.PublicID != publicID {
			return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
		}
		updates[domain.FieldUserUsername] = *req.Username
	}
	if req.Email != nil {
		updates[domain.FieldUserEmail] = *req.Email
	}
	if req.Phone != nil {
		updates[domain.FieldUserPhone] = *req.Phone
	}
	if req.FullName != nil {
		updates[domain.FieldUserFullName] = *req.FullName
	}
	if req.RoleIDs != nil {
		updates[domain.FieldUserRoleIDs] = *req.RoleIDs
	}
	if req.Enable != nil {
		updates[domain.FieldUserEnable] = *req.Enable
	}
	if len(updates) == 0 {
		return s.Get(ctx, publicID)
	}
	if err := s.repo.Update(ctx, publicID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, publicID)
}

func (s *service) Delete(ctx context.Context, publicID string) error {
	return s.repo.SoftDelete(ctx, publicID)
}

func (s *service) GetPreferences(ctx context.Context, publicID string) (*domain.UserPreference, error) {
	p, err := s.preferences.Get(ctx, publicID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.UserPreference{UserID: publicID, Language: s.defaultLang}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) SetPreferences(ctx context.Context, publicID string, input domain.UserPreferenceInput) (*domain.UserPreference, error) {
	current, err := s.GetPreferences(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if input.Language != nil {
		current.Language = *input.Language
	}
	if input.Theme != nil {
		current.Theme = *input.Theme
	}
	if input.Timezone != nil {
		current.Timezone = *input.Timezone
	}
	current.UpdatedAt = time.Now().UTC()
	if err := s.preferences.Put(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
