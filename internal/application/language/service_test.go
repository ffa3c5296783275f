package language

import (
	"context"
	"testing"

	"github.com/go-cms-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLanguageStore struct{ mock.Mock }

func (m *mockLanguageStore) Put(ctx context.Context, l *domain.Language) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLanguageStore) Get(ctx context.Context, languageID string) (*domain.Language, error) {
	args := m.Called(ctx, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *mockLanguageStore) Scan(ctx context.Context) ([]domain.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Language), args.Error(1)
}

func (m *mockLanguageStore) Update(ctx context.Context, languageID string, updates map[string]interface{}) error {
	return m.Called(ctx, languageID, updates).Error(0)
}

func (m *mockLanguageStore) HardDelete(ctx context.Context, languageID string) error {
	return m.Called(ctx, languageID).Error(0)
}

func TestCreate_DuplicateCodeConflicts(t *testing.T) {
	repo := new(mockLanguageStore)
	repo.On("Scan", mock.Anything).
		Return([]domain.Language{{LanguageID: "l1", Code: "fa"}}, nil)

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), domain.LanguageInput{Code: "fa", Direction: "rtl"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_AssignsID(t *testing.T) {
	repo := new(mockLanguageStore)
	repo.On("Scan", mock.Anything).Return([]domain.Language{}, nil)
	repo.On("Put", mock.Anything, mock.MatchedBy(func(l *domain.Language) bool {
		return l.LanguageID != "" && l.Code == "en" && l.Direction == "ltr"
	})).Return(nil)

	svc := NewService(repo)
	l, err := svc.Create(context.Background(), domain.LanguageInput{Code: "en", Direction: "ltr"})
	require.NoError(t, err)
	assert.NotEmpty(t, l.LanguageID)
}

func TestUpdate_RejectsBadDirection(t *testing.T) {
	repo := new(mockLanguageStore)
	svc := NewService(repo)

	dir := "sideways"
	_, err := svc.Update(context.Background(), "l1", domain.UpdateLanguageRequest{Direction: &dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_NoFieldsIsARead(t *testing.T) {
	repo := new(mockLanguageStore)
	repo.On("Get", mock.Anything, "l1").
		Return(&domain.Language{LanguageID: "l1", Code: "fa"}, nil)

	svc := NewService(repo)
	l, err := svc.Update(context.Background(), "l1", domain.UpdateLanguageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "fa", l.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
