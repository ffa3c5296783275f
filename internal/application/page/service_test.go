package page

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-cms-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPageStore struct{ mock.Mock }

func (m *mockPageStore) Put(ctx context.Context, p *domain.Page) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPageStore) Get(ctx context.Context, pageID string) (*domain.Page, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *mockPageStore) GetByKey(ctx context.Context, key string) (*domain.Page, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *mockPageStore) Scan(ctx context.Context) ([]domain.Page, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Page), args.Error(1)
}

func (m *mockPageStore) Update(ctx context.Context, pageID string, updates map[string]interface{}) error {
	return m.Called(ctx, pageID, updates).Error(0)
}

func (m *mockPageStore) HardDelete(ctx context.Context, pageID string) error {
	return m.Called(ctx, pageID).Error(0)
}

type mockSectionStore struct{ mock.Mock }

func (m *mockSectionStore) Put(ctx context.Context, s *domain.Section) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSectionStore) Get(ctx context.Context, sectionID string) (*domain.Section, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}

func (m *mockSectionStore) ListByPage(ctx context.Context, pageID string) ([]domain.Section, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Section), args.Error(1)
}

func (m *mockSectionStore) Update(ctx context.Context, sectionID string, updates map[string]interface{}) error {
	return m.Called(ctx, sectionID, updates).Error(0)
}

func (m *mockSectionStore) HardDelete(ctx context.Context, sectionID string) error {
	return m.Called(ctx, sectionID).Error(0)
}

type mockContentStore struct{ mock.Mock }

func (m *mockContentStore) Put(ctx context.Context, c *domain.Content) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContentStore) Get(ctx context.Context, contentID string) (*domain.Content, error) {
	args := m.Called(ctx, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Content), args.Error(1)
}

func (m *mockContentStore) ListBySection(ctx context.Context, sectionID string) ([]domain.Content, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Content), args.Error(1)
}

func (m *mockContentStore) Update(ctx context.Context, contentID string, updates map[string]interface{}) error {
	return m.Called(ctx, contentID, updates).Error(0)
}

func (m *mockContentStore) HardDelete(ctx context.Context, contentID string) error {
	return m.Called(ctx, contentID).Error(0)
}

func newTestService() (*mockPageStore, *mockSectionStore, *mockContentStore, Service) {
	pages := new(mockPageStore)
	sections := new(mockSectionStore)
	contents := new(mockContentStore)
	svc := NewService(ServiceDeps{Pages: pages, Sections: sections, Contents: contents})
	return pages, sections, contents, svc
}

func TestCreatePage_DuplicateKeyConflicts(t *testing.T) {
	pages, _, _, svc := newTestService()
	pages.On("GetByKey", mock.Anything, "home").
		Return(&domain.Page{PageID: "p1", Key: "home"}, nil)

	_, err := svc.CreatePage(context.Background(), domain.PageInput{Key: "home"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	pages.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreatePage_AssignsID(t *testing.T) {
	pages, _, _, svc := newTestService()
	pages.On("GetByKey", mock.Anything, "about").
		Return(nil, fmt.Errorf("page not found: %w", domain.ErrNotFound))
	pages.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.Page) bool {
		return p.PageID != "" && p.Key == "about"
	})).Return(nil)

	p, err := svc.CreatePage(context.Background(), domain.PageInput{Key: "about"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.PageID)
}

func TestGetPageByKey_FiltersContentsByLanguage(t *testing.T) {
	pages, sections, contents, svc := newTestService()
	pages.On("GetByKey", mock.Anything, "home").
		Return(&domain.Page{PageID: "p1", Key: "home"}, nil)
	sections.On("ListByPage", mock.Anything, "p1").
		Return([]domain.Section{{SectionID: "s1", PageID: "p1", Key: "hero"}}, nil)
	contents.On("ListBySection", mock.Anything, "s1").
		Return([]domain.Content{
			{ContentID: "c1", SectionID: "s1", Language: "fa", Key: "title", Value: "خانه"},
			{ContentID: "c2", SectionID: "s1", Language: "en", Key: "title", Value: "Home"},
		}, nil)

	p, err := svc.GetPageByKey(context.Background(), "home", "fa")
	require.NoError(t, err)
	require.Len(t, p.Sections, 1)
	require.Len(t, p.Sections[0].Contents, 1)
	assert.Equal(t, "fa", p.Sections[0].Contents[0].Language)
	assert.Equal(t, "خانه", p.Sections[0].Contents[0].Value)
}

func TestGetPageByKey_EmptyLangKeepsEverything(t *testing.T) {
	pages, sections, contents, svc := newTestService()
	pages.On("GetByKey", mock.Anything, "home").
		Return(&domain.Page{PageID: "p1", Key: "home"}, nil)
	sections.On("ListByPage", mock.Anything, "p1").
		Return([]domain.Section{{SectionID: "s1"}}, nil)
	contents.On("ListBySection", mock.Anything, "s1").
		Return([]domain.Content{
			{ContentID: "c1", Language: "fa"},
			{ContentID: "c2", Language: "en"},
		}, nil)

	p, err := svc.GetPageByKey(context.Background(), "home", "")
	require.NoError(t, err)
	assert.Len(t, p.Sections[0].Contents, 2)
}

func TestDeletePage_CascadesThroughSections(t *testing.T) {
	pages, sections, contents, svc := newTestService()
	sections.On("ListByPage", mock.Anything, "p1").
		Return([]domain.Section{{SectionID: "s1"}}, nil)
	contents.On("ListBySection", mock.Anything, "s1").
		Return([]domain.Content{{ContentID: "c1"}}, nil)
	contents.On("HardDelete", mock.Anything, "c1").Return(nil)
	sections.On("HardDelete", mock.Anything, "s1").Return(nil)
	pages.On("HardDelete", mock.Anything, "p1").Return(nil)

	require.NoError(t, svc.DeletePage(context.Background(), "p1"))
	contents.AssertCalled(t, "HardDelete", mock.Anything, "c1")
	sections.AssertCalled(t, "HardDelete", mock.Anything, "s1")
	pages.AssertCalled(t, "HardDelete", mock.Anything, "p1")
}

func TestCreateSection_RequiresExistingPage(t *testing.T) {
	pages, sections, _, svc := newTestService()
	pages.On("Get", mock.Anything, "missing").
		Return(nil, fmt.Errorf("page not found: %w", domain.ErrNotFound))

	_, err := svc.CreateSection(context.Background(), domain.SectionInput{PageID: "missing", Key: "hero"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	sections.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestUpdateContent_PartialUpdate(t *testing.T) {
	_, _, contents, svc := newTestService()
	value := "new value"
	contents.On("Update", mock.Anything, "c1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		_, hasKey := updates[fieldKey]
		return updates[fieldValue] == value && !hasKey && len(updates) == 1
	})).Return(nil)
	contents.On("Get", mock.Anything, "c1").
		Return(&domain.Content{ContentID: "c1", Value: value}, nil)

	c, err := svc.UpdateContent(context.Background(), "c1", domain.UpdateContentRequest{Value: &value})
	require.NoError(t, err)
	assert.Equal(t, value, c.Value)
}
