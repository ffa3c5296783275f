package page

import (
	"context"
	"fmt"
	"time"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/pkg/validate"
	"github.com/google/uuid"
)

const (
	fieldKey      = "key"
	fieldType     = "type"
	fieldLanguage = "language"
	fieldValue    = "value"
)

type Service interface {
	ListPages(ctx context.Context) ([]domain.Page, error)
	GetPage(ctx context.Context, pageID string) (*domain.Page, error)
	GetPageByKey(ctx context.Context, key, lang string) (*domain.Page, error)
	CreatePage(ctx context.Context, input domain.PageInput) (*domain.Page, error)
	UpdatePage(ctx context.Context, pageID string, input domain.PageInput) (*domain.Page, error)
	DeletePage(ctx context.Context, pageID string) error

	ListSections(ctx context.Context, pageID string) ([]domain.Section, error)
	CreateSection(ctx context.Context, input domain.SectionInput) (*domain.Section, error)
	UpdateSection(ctx context.Context, sectionID string, input domain.SectionInput) (*domain.Section, error)
	DeleteSection(ctx context.Context, sectionID string) error

	ListContents(ctx context.Context, sectionID string) ([]domain.Content, error)
	CreateContent(ctx context.Context, input domain.ContentInput) (*domain.Content, error)
	UpdateContent(ctx context.Context, contentID string, req domain.UpdateContentRequest) (*domain.Content, error)
	DeleteContent(ctx context.Context, contentID string) error
}

type pageStore interface {
	Put(ctx context.Context, p *domain.Page) error
	Get(ctx context.Context, pageID string) (*domain.Page, error)
	GetByKey(ctx context.Context, key string) (*domain.Page, error)
	Scan(ctx context.Context) ([]domain.Page, error)
	Update(ctx context.Context, pageID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, pageID string) error
}

type sectionStore interface {
	Put(ctx context.Context, s *domain.Section) error
	Get(ctx context.Context, sectionID string) (*domain.Section, error)
	ListByPage(ctx context.Context, pageID string) ([]domain.Section, error)
	Update(ctx context.Context, sectionID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, sectionID string) error
}

type contentStore interface {
	Put(ctx context.Context, c *domain.Content) error
	Get(ctx context.Context, contentID string) (*domain.Content, error)
	ListBySection(ctx context.Context, sectionID string) ([]domain.Content, error)
	Update(ctx context.Context, contentID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, contentID string) error
}

type service struct {
	pages    pageStore
	sections sectionStore
	contents contentStore
}

type ServiceDeps struct {
	Pages    pageStore
	Sections sectionStore
	Contents contentStore
}

func NewService(deps ServiceDeps) Service {
	return &service{pages: deps.Pages, sections: deps.Sections, contents: deps.Contents}
}

// --- pages ---

func (s *service) ListPages(ctx context.Context) ([]domain.Page, error) {
	return s.pages.Scan(ctx)
}

func (s *service) GetPage(ctx context.Context, pageID string) (*domain.Page, error) {
	p, err := s.pages.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return s.resolveTree(ctx, p, "")
}

// GetPageByKey loads the page tree by its unique key. When lang is set the
// contents are filtered to that language.
func (s *service) GetPageByKey(ctx context.Context, key, lang string) (*domain.Page, error) {
	p, err := s.pages.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.resolveTree(ctx, p, lang)
}

func (s *service) CreatePage(ctx context.Context, input domain.PageInput) (*domain.Page, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.pages.GetByKey(ctx, input.Key); err == nil {
		return nil, fmt.Errorf("page key already exists: %w", domain.ErrConflict)
	}
	now := time.Now().UTC()
	p := &domain.Page{
		PageID:    uuid.NewString(),
		Key:       input.Key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.pages.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdatePage(ctx context.Context, pageID string, input domain.PageInput) (*domain.Page, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if err := s.pages.Update(ctx, pageID, map[string]interface{}{fieldKey: input.Key}); err != nil {
		return nil, err
	}
	return s.pages.Get(ctx, pageID)
}

// DeletePage removes the page together with its sections and their contents.
func (s *service) DeletePage(ctx context.Context, pageID string) error {
	sections, err := s.sections.ListByPage(ctx, pageID)
	if err != nil {
		return err
	}
	for _, sec := range sections {
		if err := s.DeleteSection(ctx, sec.SectionID); err != nil {
			return err
		}
	}
	return s.pages.HardDelete(ctx, pageID)
}

// --- sections ---

func (s *service) ListSections(ctx context.Context, pageID string) ([]domain.Section, error) {
	return s.sections.ListByPage(ctx, pageID)
}

func (s *service) CreateSection(ctx context.Context, input domain.SectionInput) (*domain.Section, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.pages.Get(ctx, input.PageID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sec := &domain.Section{
		SectionID: uuid.NewString(),
		PageID:    input.PageID,
		Key:       input.Key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sections.Put(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *service) UpdateSection(ctx context.Context, sectionID string, input domain.SectionInput) (*domain.Section, error) {
	if input.Key == "" {
		return nil, fmt.Errorf("key is required: %w", domain.ErrBadRequest)
	}
	if err := s.sections.Update(ctx, sectionID, map[string]interface{}{fieldKey: input.Key}); err != nil {
		return nil, err
	}
	return s.sections.Get(ctx, sectionID)
}

func (s *service) DeleteSection(ctx context.Context, sectionID string) error {
	contents, err := s.contents.ListBySection(ctx, sectionID)
	if err != nil {
		return err
	}
	for _, c := range contents {
		if err := s.contents.HardDelete(ctx, c.ContentID); err != nil {
			return err
		}
	}
	return s.sections.HardDelete(ctx, sectionID)
}

// --- contents ---

func (s *service) ListContents(ctx context.Context, sectionID string) ([]domain.Content, error) {
	return s.contents.ListBySection(ctx, sectionID)
}

func (s *service) CreateContent(ctx context.Context, input domain.ContentInput) (*domain.Content, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.sections.Get(ctx, input.SectionID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Content{
		ContentID: uuid.NewString(),
		SectionID: input.SectionID,
		Type:      input.Type,
		Language:  input.Language,
		Key:       input.Key,
		Value:     input.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.contents.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateContent(ctx context.Context, contentID string, req domain.UpdateContentRequest) (*domain.Content, error) {
	updates := map[string]interface{}{}
	if req.Type != nil {
		updates[fieldType] = *req.Type
	}
	if req.Language != nil {
		updates[fieldLanguage] = *req.Language
	}
	if req.Key != nil {
		updates[fieldKey] = *req.Key
	}
	if req.Value != nil {
		updates[fieldValue] = *req.Value
	}
	if len(updates) == 0 {
		return s.contents.Get(ctx, contentID)
	}
	if err := s.contents.Update(ctx, contentID, updates); err != nil {
		return nil, err
	}
	return s.contents.Get(ctx, contentID)
}

func (s *service) DeleteContent(ctx context.Context, contentID string) error {
	return s.contents.HardDelete(ctx, contentID)
}

// resolveTree loads sections and their contents under the page. A non-empty
// lang keeps only contents in that language.
func (s *service) resolveTree(ctx context.Context, p *domain.Page, lang string) (*domain.Page, error) {
	sections, err := s.sections.ListByPage(ctx, p.PageID)
	if err != nil {
		return nil, err
	}
	for i := range sections {
		contents, err := s.contents.ListBySection(ctx, sections[i].SectionID)
		if err != nil {
			return nil, err
		}
		if lang != "" {
			filtered := contents[:0]
			for _, c := range contents {
				if c.Language == lang {
					filtered = append(filtered, c)
				}
			}
			contents = filtered
		}
		sections[i].Contents = contents
	}
	p.Sections = sections
	return p, nil
}
