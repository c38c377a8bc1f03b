package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jeremyjsx/dashboard/internal/cache"
	"github.com/jeremyjsx/dashboard/internal/events"
)

// UploadsPath is where the header images are served from.
const UploadsPath = "/uploads/"

type pageKey struct {
	page    int
	perPage int
}

type Service struct {
	store     Store
	cache     cache.Invalidator
	publisher events.Publisher
	logger    *slog.Logger
	listing   *cache.Cache[pageKey, *ListResult]
}

// NewService registers the posts listing cache under ListingPath so that
// invalidating the path drops every cached page.
func NewService(store Store, registry *cache.Registry, publisher events.Publisher, logger *slog.Logger, ttl time.Duration) *Service {
	s := &Service{
		store:     store,
		cache:     registry,
		publisher: publisher,
		logger:    logger,
	}
	s.listing = cache.New(ttl, s.loadPage)
	registry.Register(ListingPath, s.listing)
	return s
}

func (s *Service) GetPost(ctx context.Context, slug string) (*Entry, error) {
	entry, err := s.store.Posts().GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if entry.HeaderImage != "" {
		entry.ImageURL = UploadsPath + entry.HeaderImage
	}
	return entry, nil
}

func (s *Service) ListPosts(ctx context.Context, page, perPage int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.listing.Get(ctx, pageKey{page: page, perPage: perPage})
}

func (s *Service) loadPage(ctx context.Context, key pageKey) (*ListResult, error) {
	offset := (key.page - 1) * key.perPage

	posts, err := s.store.Posts().List(ctx, ListParams{
		Limit:  key.perPage,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	total, err := s.store.Posts().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / key.perPage
	if int(total)%key.perPage > 0 {
		totalPages++
	}

	return &ListResult{
		Posts:      posts,
		Total:      total,
		Page:       key.page,
		PerPage:    key.perPage,
		TotalPages: totalPages,
	}, nil
}

// DeletePost removes a post and its metadata together. The header image is
// left in storage since other posts may reference the same file name.
func (s *Service) DeletePost(ctx context.Context, id uuid.UUID) error {
	var post *Post
	err := s.store.InTx(ctx, func(tx Store) error {
		p, err := tx.Posts().GetByID(ctx, id)
		if err != nil {
			return err
		}
		post = p
		if _, err := tx.Meta().DeleteByPostID(ctx, id); err != nil {
			return err
		}
		return tx.Posts().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("delete post failed", "post_id", id, "error", err)
		return &Failure{Stage: StageDone, Kind: ErrDatabase, Message: msgDeletePost, Err: fmt.Errorf("delete post %s: %w", id, err)}
	}

	s.cache.Invalidate(ctx, ListingPath)
	if err := s.publisher.PublishPostEvent(ctx, events.NewPostDeleted(post.ID, post.Slug, post.Name)); err != nil {
		s.logger.Warn("publish post.deleted failed", "post_id", id, "error", err)
	}
	s.logger.Info("post deleted", "post_id", id, "slug", post.Slug)
	return nil
}
