package posts

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Insert generates the post id and creation dates and writes the row.
	Insert(ctx context.Context, p *Post) error
	// FindLatestIDByName returns the id of the most recently created post
	// with exactly this name.
	FindLatestIDByName(ctx context.Context, name string) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Entry, error)
	List(ctx context.Context, params ListParams) ([]*Summary, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MetaRepository interface {
	Insert(ctx context.Context, m *Meta) error
	DeleteByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
}

// Store hands out repositories that share one connection or transaction.
type Store interface {
	Posts() Repository
	Meta() MetaRepository
	// InTx runs fn against a transactional Store. Calling InTx on a store
	// that is already transactional reuses the transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

// AuthorLookup checks that a submitted author reference names a user.
type AuthorLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}
