package services_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"taxblog/internal/domain/models"
	services "taxblog/internal/services/seo_service"
	"taxblog/internal/storage"
	redisstorage "taxblog/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSeoRepository struct {
	mock.Mock
}

func (m *MockSeoRepository) SaveGuideline(ctx context.Context, g models.SeoGuideline) (uuid.UUID, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSeoRepository) GetAllGuidelines(ctx context.Context) ([]models.SeoGuideline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.SeoGuideline), args.Error(1)
}

func (m *MockSeoRepository) GetActiveGuideline(ctx context.Context) (*models.SeoGuideline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SeoGuideline), args.Error(1)
}

func (m *MockSeoRepository) GetGuidelineByID(ctx context.Context, id uuid.UUID) (*models.SeoGuideline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SeoGuideline), args.Error(1)
}

func (m *MockSeoRepository) UpdateGuidelineFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockSeoRepository) SetActiveGuideline(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetActiveGuideline_NoneActiveReturnsNil(t *testing.T) {
	repo := new(MockSeoRepository)
	repo.On("GetActiveGuideline", mock.Anything).Return(nil, storage.ErrGuidelineNotFound)

	svc := services.NewSeoService(testLogger(), repo, nil)

	g, err := svc.GetActiveGuideline(context.Background())
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestGetActiveGuideline_CacheMissStoresResult(t *testing.T) {
	repo := new(MockSeoRepository)
	db, cacheMock := redismock.NewClientMock()

	active := &models.SeoGuideline{
		ID:         uuid.New(),
		Name:       "Default",
		Guidelines: "use keyword in first paragraph",
		Version:    "1.0",
		Active:     true,
	}
	raw, err := json.Marshal(active)
	require.NoError(t, err)

	cacheMock.ExpectGet("seo:active_guideline").RedisNil()
	cacheMock.ExpectSet("seo:active_guideline", raw, 5*time.Minute).SetVal("OK")

	repo.On("GetActiveGuideline", mock.Anything).Return(active, nil)

	svc := services.NewSeoService(testLogger(), repo, &redisstorage.Client{Client: db})

	g, err := svc.GetActiveGuideline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, active.ID, g.ID)

	require.NoError(t, cacheMock.ExpectationsWereMet())
}

func TestGetActiveGuideline_CacheHitSkipsRepository(t *testing.T) {
	repo := new(MockSeoRepository)
	db, cacheMock := redismock.NewClientMock()

	active := &models.SeoGuideline{
		ID:     uuid.New(),
		Name:   "Default",
		Active: true,
	}
	raw, err := json.Marshal(active)
	require.NoError(t, err)

	cacheMock.ExpectGet("seo:active_guideline").SetVal(string(raw))

	svc := services.NewSeoService(testLogger(), repo, &redisstorage.Client{Client: db})

	g, err := svc.GetActiveGuideline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, active.ID, g.ID)

	repo.AssertNotCalled(t, "GetActiveGuideline", mock.Anything)
	require.NoError(t, cacheMock.ExpectationsWereMet())
}

func TestActivateGuideline_InvalidatesCache(t *testing.T) {
	repo := new(MockSeoRepository)
	db, cacheMock := redismock.NewClientMock()

	id := uuid.New()

	repo.On("SetActiveGuideline", mock.Anything, id).Return(nil)
	cacheMock.ExpectDel("seo:active_guideline").SetVal(1)

	svc := services.NewSeoService(testLogger(), repo, &redisstorage.Client{Client: db})

	require.NoError(t, svc.ActivateGuideline(context.Background(), id))

	repo.AssertExpectations(t)
	require.NoError(t, cacheMock.ExpectationsWereMet())
}

func TestActivateGuideline_UnknownIDLeavesCacheAlone(t *testing.T) {
	repo := new(MockSeoRepository)
	db, cacheMock := redismock.NewClientMock()

	id := uuid.New()

	repo.On("SetActiveGuideline", mock.Anything, id).Return(storage.ErrGuidelineNotFound)

	svc := services.NewSeoService(testLogger(), repo, &redisstorage.Client{Client: db})

	err := svc.ActivateGuideline(context.Background(), id)
	assert.ErrorIs(t, err, storage.ErrGuidelineNotFound)

	require.NoError(t, cacheMock.ExpectationsWereMet())
}
