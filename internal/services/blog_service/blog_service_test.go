package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"taxblog/internal/domain/models"
	services "taxblog/internal/services/blog_service"
	"taxblog/internal/storage"
	"taxblog/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreatePost_DefaultsAndSlug(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	postID := uuid.New()

	posts.On("SavePost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
		return p.Category == "general" && p.Slug != "" && p.PublishedAt == nil
	})).Return(postID, nil)
	posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID}, nil)

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	post, err := svc.CreatePost(context.Background(), dto.CreatePostRequest{
		Title:   "Quarterly VAT filing",
		Content: "body",
	})
	require.NoError(t, err)
	assert.Equal(t, postID, post.ID)

	posts.AssertExpectations(t)
}

func TestCreatePost_PublishedSetsPublishedAt(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	postID := uuid.New()

	posts.On("SavePost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
		return p.Published && p.PublishedAt != nil
	})).Return(postID, nil)
	posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID}, nil)

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	_, err := svc.CreatePost(context.Background(), dto.CreatePostRequest{
		Title:     "Quarterly VAT filing",
		Content:   "body",
		Published: true,
	})
	require.NoError(t, err)

	posts.AssertExpectations(t)
}

func TestCreatePost_SlugConflictRetriesOnce(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	postID := uuid.New()

	posts.On("SavePost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
		return p.Slug == "quarterly-vat-filing"
	})).Return(uuid.Nil, storage.ErrSlugTaken).Once()
	posts.On("SavePost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
		return p.Slug != "quarterly-vat-filing"
	})).Return(postID, nil).Once()
	posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID}, nil)

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	_, err := svc.CreatePost(context.Background(), dto.CreatePostRequest{
		Title:   "Quarterly VAT filing",
		Content: "body",
		Slug:    "quarterly-vat-filing",
	})
	require.NoError(t, err)

	posts.AssertExpectations(t)
}

func TestUpdatePost_PublishTransitionSetsPublishedAt(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	postID := uuid.New()
	published := true

	posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{ID: postID, Published: false}, nil)
	posts.On("UpdatePostFields", mock.Anything, postID, mock.MatchedBy(func(updates map[string]interface{}) bool {
		_, hasPublishedAt := updates["published_at"]
		return updates["published"] == true && hasPublishedAt
	})).Return(nil)

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	_, err := svc.UpdatePost(context.Background(), postID, dto.UpdatePostRequest{
		Published: &published,
	})
	require.NoError(t, err)

	posts.AssertExpectations(t)
}

func TestUpdatePost_RepublishKeepsPublishedAt(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	postID := uuid.New()
	published := true
	was := time.Now().Add(-24 * time.Hour)

	posts.On("GetPostByID", mock.Anything, postID).Return(&models.Post{
		ID:          postID,
		Published:   true,
		PublishedAt: &was,
	}, nil)
	posts.On("UpdatePostFields", mock.Anything, postID, mock.MatchedBy(func(updates map[string]interface{}) bool {
		_, hasPublishedAt := updates["published_at"]
		return !hasPublishedAt
	})).Return(nil)

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	_, err := svc.UpdatePost(context.Background(), postID, dto.UpdatePostRequest{
		Published: &published,
	})
	require.NoError(t, err)

	posts.AssertExpectations(t)
}

func TestReadPostBySlug_IncrementsViews(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	postID := uuid.New()

	posts.On("GetPostBySlug", mock.Anything, "vat-guide").Return(&models.Post{ID: postID, Slug: "vat-guide"}, nil)
	posts.On("IncrementViews", mock.Anything, postID).Return(nil)

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	post, err := svc.ReadPostBySlug(context.Background(), "vat-guide")
	require.NoError(t, err)
	assert.Equal(t, "vat-guide", post.Slug)

	posts.AssertExpectations(t)
}

func TestReadPostBySlug_NotFound(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	posts.On("GetPostBySlug", mock.Anything, "missing").Return(nil, storage.ErrPostNotFound)

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	_, err := svc.ReadPostBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrPostNotFound)

	posts.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestPublishScheduledPost_SecondCallLosesRace(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	id := uuid.New()
	postID := uuid.New()

	scheduled.On("PublishScheduledPost", mock.Anything, id).Return(&models.Post{ID: postID, Published: true}, nil).Once()
	scheduled.On("PublishScheduledPost", mock.Anything, id).Return(nil, storage.ErrScheduledNotFound).Once()

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	post, err := svc.PublishScheduledPost(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, post.Published)

	_, err = svc.PublishScheduledPost(context.Background(), id)
	assert.ErrorIs(t, err, storage.ErrScheduledNotFound)

	scheduled.AssertExpectations(t)
}

func TestPublishDuePosts_SkipsRowsLostToConcurrentTrigger(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	first := models.ScheduledPost{ID: uuid.New()}
	second := models.ScheduledPost{ID: uuid.New()}
	publishedID := uuid.New()

	scheduled.On("GetScheduledPostsDue", mock.Anything, mock.Anything).Return([]models.ScheduledPost{first, second}, nil)
	scheduled.On("PublishScheduledPost", mock.Anything, first.ID).Return(nil, storage.ErrScheduledNotFound)
	scheduled.On("PublishScheduledPost", mock.Anything, second.ID).Return(&models.Post{ID: publishedID, Published: true}, nil)

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	published, err := svc.PublishDuePosts(context.Background())
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, publishedID, published[0].ID)

	scheduled.AssertExpectations(t)
}

func TestListPublishedPosts_UsesCacheOnSecondCall(t *testing.T) {
	posts := new(MockPostRepository)
	scheduled := new(MockScheduledRepository)

	posts.On("GetPublishedPosts", mock.Anything).Return([]models.Post{{Slug: "a"}}, nil).Once()

	svc := services.NewBlogService(testLogger(), posts, scheduled)

	_, err := svc.ListPublishedPosts(context.Background())
	require.NoError(t, err)

	// second call must be served from the cache
	list, err := svc.ListPublishedPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	posts.AssertExpectations(t)
}
