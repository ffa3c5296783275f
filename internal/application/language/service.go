package language

import (
	"context"
	"fmt"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/pkg/validate"
	"github.com/google/uuid"
)

const (
	fieldCode      = "code"
	fieldDirection = "direction"
	fieldFontClass = "font_class"
)

type Service interface {
	List(ctx context.Context) ([]domain.Language, error)
	Get(ctx context.Context, languageID string) (*domain.Language, error)
	Create(ctx context.Context, input domain.LanguageInput) (*domain.Language, error)
	Update(ctx context.Context, languageID string, req domain.UpdateLanguageRequest) (*domain.Language, error)
	Delete(ctx context.Context, languageID string) error
}

type languageStore interface {
	Put(ctx context.Context, l *domain.Language) error
	Get(ctx context.Context, languageID string) (*domain.Language, error)
	Scan(ctx context.Context) ([]domain.Language, error)
	Update(ctx context.Context, languageID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, languageID string) error
}

type service struct {
	repo languageStore
}

func NewService(repo languageStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Language, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, languageID string) (*domain.Language, error) {
	return s.repo.Get(ctx, languageID)
}

func (s *service) Create(ctx context.Context, input domain.LanguageInput) (*domain.Language, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	existing, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range existing {
		if l.Code == input.Code {
			return nil, fmt.Errorf("language code already exists: %w", domain.ErrConflict)
		}
	}
	l := &domain.Language{
		LanguageID: uuid.NewString(),
		Code:       input.Code,
		Direction:  input.Direction,
		FontClass:  input.FontClass,
	}
	if err := s.repo.Put(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Update(ctx context.Context, languageID string, req domain.UpdateLanguageRequest) (*domain.Language, error) {
	updates := map[string]interface{}{}
	if req.Code != nil {
		updates[fieldCode] = *req.Code
	}
	if req.Direction != nil {
		if *req.Direction != "ltr" && *req.Direction != "rtl" {
			return nil, fmt.Errorf("direction must be ltr or rtl: %w", domain.ErrBadRequest)
		}
		updates[fieldDirection] = *req.Direction
	}
	if req.FontClass != nil {
		updates[fieldFontClass] = *req.FontClass
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, languageID)
	}
	if err := s.repo.Update(ctx, languageID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, languageID)
}

func (s *service) Delete(ctx context.Context, languageID string) error {
	return s.repo.HardDelete(ctx, languageID)
}
