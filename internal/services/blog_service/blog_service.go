package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taxblog/internal/domain/models"
	"taxblog/internal/lib/logger/sl"
	"taxblog/internal/lib/slug"
	"taxblog/internal/repository"
	"taxblog/internal/storage"
	"taxblog/internal/transport/http/dto"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	publishedListKey = "posts:published"
	listCacheTTL     = time.Minute
)

type BlogService struct {
	log       *slog.Logger
	posts     repository.PostRepository
	scheduled repository.ScheduledPostRepository
	cache     *gocache.Cache
}

func NewBlogService(log *slog.Logger, posts repository.PostRepository, scheduled repository.ScheduledPostRepository) *BlogService {
	return &BlogService{
		log:       log,
		posts:     posts,
		scheduled: scheduled,
		cache:     gocache.New(listCacheTTL, 5*time.Minute),
	}
}

func (s *BlogService) CreatePost(ctx context.Context, req dto.CreatePostRequest) (*models.Post, error) {
	const op = "blog_service.CreatePost"
	log := s.log.With(slog.String("op", op))

	log.Info("creating post", slog.String("title", req.Title))

	post := models.Post{
		Title:          req.Title,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		Slug:           req.Slug,
		Category:       req.Category,
		Tags:           req.Tags,
		MainKeyword:    req.MainKeyword,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		AuthorID:       req.AuthorID,
		Published:      req.Published,
		Featured:       req.Featured,
	}

	if post.Category == "" {
		post.Category = "general"
	}
	if post.Slug == "" {
		post.Slug = slug.Make(post.Title, time.Now().UnixMilli())
	}
	if post.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	id, err := s.posts.SavePost(ctx, post)
	if err != nil {
		if errors.Is(err, storage.ErrSlugTaken) {
			log.Warn("slug conflict, regenerating", slog.String("slug", post.Slug))
			post.Slug = slug.Make(post.Title, time.Now().UnixMilli())
			id, err = s.posts.SavePost(ctx, post)
		}
		if err != nil {
			log.Error("failed to create post", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	s.cache.Flush()

	log.Info("post created", slog.String("post_id", id.String()))
	return s.posts.GetPostByID(ctx, id)
}

func (s *BlogService) UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdatePostRequest) (*models.Post, error) {
	const op = "blog_service.UpdatePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	existing, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		log.Error("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.MainKeyword != nil {
		updates["main_keyword"] = *req.MainKeyword
	}
	if req.SeoTitle != nil {
		updates["seo_title"] = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		updates["seo_description"] = *req.SeoDescription
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Published != nil {
		updates["published"] = *req.Published

		// published_at is set on the draft -> published transition only
		if *req.Published && !existing.Published {
			if req.PublishedAt != nil {
				updates["published_at"] = *req.PublishedAt
			} else {
				updates["published_at"] = time.Now()
			}
		}
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.posts.UpdatePostFields(ctx, postID, updates); err != nil {
		log.Error("failed to update post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Flush()

	log.Info("post updated")
	return s.posts.GetPostByID(ctx, postID)
}

func (s *BlogService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const op = "blog_service.DeletePost"

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Flush()

	return nil
}

func (s *BlogService) GetPostByID(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, postID)
}

// ReadPostBySlug fetches a post for the public reading path and bumps its
// view counter. The increment is not synchronized with the read, so the
// returned count may be momentarily stale.
func (s *BlogService) ReadPostBySlug(ctx context.Context, postSlug string) (*models.Post, error) {
	const op = "blog_service.ReadPostBySlug"

	post, err := s.posts.GetPostBySlug(ctx, postSlug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
		s.log.Warn("failed to increment views", sl.Err(err))
	}

	return post, nil
}

func (s *BlogService) ListAllPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.GetAllPosts(ctx)
}

func (s *BlogService) ListPublishedPosts(ctx context.Context) ([]models.Post, error) {
	const op = "blog_service.ListPublishedPosts"

	if cached, ok := s.cache.Get(publishedListKey); ok {
		return cached.([]models.Post), nil
	}

	posts, err := s.posts.GetPublishedPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(publishedListKey, posts, gocache.DefaultExpiration)

	return posts, nil
}

func (s *BlogService) ListPostsByCategory(ctx context.Context, category string) ([]models.Post, error) {
	return s.posts.GetPostsByCategory(ctx, category)
}

func (s *BlogService) ListScheduledPosts(ctx context.Context) ([]models.ScheduledPost, error) {
	return s.scheduled.GetAllScheduledPosts(ctx)
}

func (s *BlogService) DeleteScheduledPost(ctx context.Context, id uuid.UUID) error {
	return s.scheduled.DeleteScheduledPost(ctx, id)
}

// PublishScheduledPost promotes one scheduled row into a published post.
// Concurrent calls for the same id race on the row deletion; the loser
// gets storage.ErrScheduledNotFound.
func (s *BlogService) PublishScheduledPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	const op = "blog_service.PublishScheduledPost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("scheduled_id", id.String()),
	)

	post, err := s.scheduled.PublishScheduledPost(ctx, id)
	if err != nil {
		log.Warn("publish failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Flush()

	log.Info("scheduled post published", slog.String("post_id", post.ID.String()))
	return post, nil
}

// PublishDuePosts publishes every scheduled post whose time has passed.
// Safe to call from concurrent triggers: each row is claimed through the
// same delete-then-insert transaction, so a row already taken by another
// tick is skipped.
func (s *BlogService) PublishDuePosts(ctx context.Context) ([]models.Post, error) {
	const op = "blog_service.PublishDuePosts"
	log := s.log.With(slog.String("op", op))

	due, err := s.scheduled.GetScheduledPostsDue(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var published []models.Post
	for _, sp := range due {
		post, err := s.scheduled.PublishScheduledPost(ctx, sp.ID)
		if err != nil {
			if errors.Is(err, storage.ErrScheduledNotFound) {
				// lost the race to a concurrent trigger
				continue
			}
			log.Error("failed to publish due post", slog.String("scheduled_id", sp.ID.String()), sl.Err(err))
			return published, fmt.Errorf("%s: %w", op, err)
		}
		published = append(published, *post)
	}

	if len(published) > 0 {
		s.cache.Flush()
		log.Info("due posts published", slog.Int("count", len(published)))
	}

	return published, nil
}
