package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"taxblog/internal/domain/models"
	"taxblog/internal/llm"
	services "taxblog/internal/services/content_service"
	"taxblog/internal/storage"
	"taxblog/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateBlogContent(ctx context.Context, opts llm.GenerateOptions) (*llm.GeneratedContent, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.GeneratedContent), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) SavePost(ctx context.Context, post models.Post) (uuid.UUID, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPublishedPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostsByCategory(ctx context.Context, category string) ([]models.Post, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdatePostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, postID, updates)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockScheduledRepository struct {
	mock.Mock
}

func (m *MockScheduledRepository) SaveScheduledPost(ctx context.Context, post models.ScheduledPost) (uuid.UUID, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockScheduledRepository) GetScheduledPostByID(ctx context.Context, id uuid.UUID) (*models.ScheduledPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledRepository) GetAllScheduledPosts(ctx context.Context) ([]models.ScheduledPost, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledRepository) GetScheduledPostsDue(ctx context.Context, now time.Time) ([]models.ScheduledPost, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]models.ScheduledPost), args.Error(1)
}

func (m *MockScheduledRepository) DeleteScheduledPost(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduledRepository) PublishScheduledPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

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

func generated() *llm.GeneratedContent {
	return &llm.GeneratedContent{
		Title:       "Year-End Tax Settlement Guide",
		Content:     "Full article body",
		Excerpt:     "A short summary",
		WordCount:   17,
		Model:       "gpt-4-turbo",
		TotalTokens: 1200,
	}
}

func newService(gen *MockGenerator, posts *MockPostRepository, scheduled *MockScheduledRepository, seo *MockSeoRepository) *services.ContentService {
	return services.NewContentService(testLogger(), gen, posts, scheduled, seo)
}

func TestGenerate_PreviewPersistsNothing(t *testing.T) {
	gen := new(MockGenerator)
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)
	seo := new(MockSeoRepository)

	seo.On("GetActiveGuideline", mock.Anything).Return(nil, storage.ErrGuidelineNotFound)
	gen.On("GenerateBlogContent", mock.Anything, mock.Anything).Return(generated(), nil)

	svc := newService(gen, posts, scheduled, seo)

	result, err := svc.Generate(context.Background(), dto.GenerateContentRequest{
		Topic: "year-end tax settlement",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, dto.GenerateTypePreview, result.Type)
	assert.Nil(t, result.ID)
	require.NotNil(t, result.PostData)
	assert.False(t, result.PostData.Published)
	assert.True(t, result.PostData.AiGenerated)
	assert.NotEmpty(t, result.PostData.Slug)

	posts.AssertNotCalled(t, "SavePost", mock.Anything, mock.Anything)
	scheduled.AssertNotCalled(t, "SaveScheduledPost", mock.Anything, mock.Anything)
}

func TestGenerate_DraftCreatesUnpublishedPost(t *testing.T) {
	gen := new(MockGenerator)
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)
	seo := new(MockSeoRepository)

	draftID := uuid.New()

	seo.On("GetActiveGuideline", mock.Anything).Return(nil, storage.ErrGuidelineNotFound)
	gen.On("GenerateBlogContent", mock.Anything, mock.Anything).Return(generated(), nil)
	posts.On("SavePost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
		return !p.Published && p.AiGenerated && p.Title == "Year-End Tax Settlement Guide"
	})).Return(draftID, nil)

	svc := newService(gen, posts, scheduled, seo)

	result, err := svc.Generate(context.Background(), dto.GenerateContentRequest{
		Topic:       "year-end tax settlement",
		SaveAsDraft: true,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.GenerateTypeDraft, result.Type)
	require.NotNil(t, result.ID)
	assert.Equal(t, draftID, *result.ID)

	posts.AssertExpectations(t)
	scheduled.AssertNotCalled(t, "SaveScheduledPost", mock.Anything, mock.Anything)
}

func TestGenerate_ScheduledCreatesScheduledPost(t *testing.T) {
	gen := new(MockGenerator)
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)
	seo := new(MockSeoRepository)

	scheduledID := uuid.New()
	when := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	seo.On("GetActiveGuideline", mock.Anything).Return(nil, storage.ErrGuidelineNotFound)
	gen.On("GenerateBlogContent", mock.Anything, mock.Anything).Return(generated(), nil)
	scheduled.On("SaveScheduledPost", mock.Anything, mock.MatchedBy(func(p models.ScheduledPost) bool {
		return p.ScheduledFor.Equal(when) && p.AiGenerated && p.AiPrompt != ""
	})).Return(scheduledID, nil)

	svc := newService(gen, posts, scheduled, seo)

	result, err := svc.Generate(context.Background(), dto.GenerateContentRequest{
		Topic:       "VAT filing deadlines",
		ScheduleFor: when.Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, dto.GenerateTypeScheduled, result.Type)
	require.NotNil(t, result.ScheduledFor)
	assert.True(t, result.ScheduledFor.Equal(when))

	scheduled.AssertExpectations(t)
	posts.AssertNotCalled(t, "SavePost", mock.Anything, mock.Anything)
}

func TestGenerate_InvalidScheduleTimeFailsBeforeGeneration(t *testing.T) {
	gen := new(MockGenerator)
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)
	seo := new(MockSeoRepository)

	svc := newService(gen, posts, scheduled, seo)

	_, err := svc.Generate(context.Background(), dto.GenerateContentRequest{
		Topic:       "VAT filing deadlines",
		ScheduleFor: "tomorrow morning",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidScheduleTime)

	gen.AssertNotCalled(t, "GenerateBlogContent", mock.Anything, mock.Anything)
}

func TestGenerate_ActiveGuidelineInjectedIntoPrompt(t *testing.T) {
	gen := new(MockGenerator)
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)
	seo := new(MockSeoRepository)

	seo.On("GetActiveGuideline", mock.Anything).Return(&models.SeoGuideline{
		Name:       "Default",
		Guidelines: "use keyword in first paragraph",
		Active:     true,
	}, nil)
	gen.On("GenerateBlogContent", mock.Anything, mock.MatchedBy(func(opts llm.GenerateOptions) bool {
		return opts.SeoGuidelines == "use keyword in first paragraph"
	})).Return(generated(), nil)

	svc := newService(gen, posts, scheduled, seo)

	_, err := svc.Generate(context.Background(), dto.GenerateContentRequest{
		Topic: "corporate tax rates",
	})
	require.NoError(t, err)

	gen.AssertExpectations(t)
}

func TestGenerate_GeneratorFailurePersistsNothing(t *testing.T) {
	gen := new(MockGenerator)
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)
	seo := new(MockSeoRepository)

	seo.On("GetActiveGuideline", mock.Anything).Return(nil, storage.ErrGuidelineNotFound)
	gen.On("GenerateBlogContent", mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))

	svc := newService(gen, posts, scheduled, seo)

	_, err := svc.Generate(context.Background(), dto.GenerateContentRequest{
		Topic:       "corporate tax rates",
		SaveAsDraft: true,
	})
	require.Error(t, err)

	posts.AssertNotCalled(t, "SavePost", mock.Anything, mock.Anything)
	scheduled.AssertNotCalled(t, "SaveScheduledPost", mock.Anything, mock.Anything)
}

func TestGenerate_DefaultCategoryApplied(t *testing.T) {
	gen := new(MockGenerator)
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)
	seo := new(MockSeoRepository)

	seo.On("GetActiveGuideline", mock.Anything).Return(nil, storage.ErrGuidelineNotFound)
	gen.On("GenerateBlogContent", mock.Anything, mock.MatchedBy(func(opts llm.GenerateOptions) bool {
		return opts.Category == "general accounting"
	})).Return(generated(), nil)

	svc := newService(gen, posts, scheduled, seo)

	result, err := svc.Generate(context.Background(), dto.GenerateContentRequest{
		Topic: "bookkeeping basics",
	})
	require.NoError(t, err)
	assert.Equal(t, "general accounting", result.PostData.Category)

	gen.AssertExpectations(t)
}
