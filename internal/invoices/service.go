package invoices

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jeremyjsx/dashboard/internal/cache"
)

// ItemsPerPage is the page size of the invoices table.
const ItemsPerPage = 6

type pageKey struct {
	page int
}

type Service struct {
	repo    *Repository
	cache   cache.Invalidator
	logger  *slog.Logger
	listing *cache.Cache[pageKey, []Row]
}

func NewService(repo *Repository, registry *cache.Registry, logger *slog.Logger, ttl time.Duration) *Service {
	s := &Service{repo: repo, cache: registry, logger: logger}
	s.listing = cache.New(ttl, func(ctx context.Context, k pageKey) ([]Row, error) {
		return s.repo.List(ctx, "", ItemsPerPage, (k.page-1)*ItemsPerPage)
	})
	registry.Register(ListingPath, s.listing)
	return s
}

// List returns one page of invoices. Only the unfiltered listing is cached;
// searches always go to the database.
func (s *Service) List(ctx context.Context, query string, page int) ([]Row, error) {
	if page < 1 {
		page = 1
	}
	if query != "" {
		return s.repo.List(ctx, query, ItemsPerPage, (page-1)*ItemsPerPage)
	}
	return s.listing.Get(ctx, pageKey{page: page})
}

func (s *Service) Create(ctx context.Context, values map[string]string) (*Invoice, error) {
	in, errs := Validate(values)
	if errs != nil {
		return nil, &Failure{Kind: ErrValidation, Message: "Missing Fields. Failed to Create Invoice.", Fields: errs}
	}
	inv, err := s.repo.Insert(ctx, in)
	if err != nil {
		s.logger.Error("create invoice failed", "error", err)
		return nil, &Failure{Kind: ErrDatabase, Message: "Database Error: Failed to Create Invoice.", Err: err}
	}
	s.cache.Invalidate(ctx, ListingPath)
	return inv, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, values map[string]string) error {
	in, errs := Validate(values)
	if errs != nil {
		return &Failure{Kind: ErrValidation, Message: "Missing Fields. Failed to Update Invoice.", Fields: errs}
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		s.logger.Error("update invoice failed", "invoice_id", id, "error", err)
		return &Failure{Kind: ErrDatabase, Message: "Database Error: Failed to Update Invoice.", Err: err}
	}
	s.cache.Invalidate(ctx, ListingPath)
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		s.logger.Error("delete invoice failed", "invoice_id", id, "error", err)
		return &Failure{Kind: ErrDatabase, Message: "Database Error: Failed to Delete Invoice.", Err: err}
	}
	s.cache.Invalidate(ctx, ListingPath)
	return nil
}
