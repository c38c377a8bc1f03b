package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jeremyjsx/dashboard/internal/database"
)

var _ Store = (*SQLStore)(nil)

type SQLStore struct {
	db  *sqlx.DB
	q   database.Querier
	now func() time.Time
}

type StoreOption func(*SQLStore)

// WithClock replaces the clock used to stamp new posts.
func WithClock(now func() time.Time) StoreOption {
	return func(s *SQLStore) {
		s.now = now
	}
}

func NewSQLStore(db *sqlx.DB, opts ...StoreOption) *SQLStore {
	s := &SQLStore{db: db, q: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SQLStore) Posts() Repository {
	return &postRepository{q: s.q, now: s.now}
}

func (s *SQLStore) Meta() MetaRepository {
	return &metaRepository{q: s.q}
}

func (s *SQLStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	if _, ok := s.q.(*sqlx.Tx); ok {
		return fn(s)
	}
	return database.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(&SQLStore{db: s.db, q: tx, now: s.now})
	})
}

type postRepository struct {
	q   database.Querier
	now func() time.Time
}

func (r *postRepository) Insert(ctx context.Context, p *Post) error {
	now := r.now().UTC()
	p.ID = uuid.New()
	p.DateCreated = database.NewDate(now)
	p.CreatedAt = now

	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO posts (id, name, user_id, slug, date_created, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		p.ID, p.Name, p.AuthorID, p.Slug, p.DateCreated, p.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *postRepository) FindLatestIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.q.GetContext(ctx, &id, r.q.Rebind(`
		SELECT id FROM posts
		WHERE name = ?
		ORDER BY created_at DESC
		LIMIT 1`), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("select post id: %w", err)
	}
	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	var p Post
	err := r.q.GetContext(ctx, &p, r.q.Rebind(`
		SELECT id, name, slug, user_id, date_created
		FROM posts WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*Entry, error) {
	var e Entry
	err := r.q.GetContext(ctx, &e, r.q.Rebind(`
		SELECT p.id AS post_id,
		       p.slug,
		       p.name AS post_title,
		       COALESCE(m.meta_title, '') AS meta_title,
		       COALESCE(m.meta_description, '') AS meta_description,
		       COALESCE(m.header_image_url, '') AS header_image_url,
		       COALESCE(u.name, '') AS author_name,
		       p.date_created
		FROM posts p
		LEFT JOIN post_meta m ON m.post_id = p.id
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.slug = ?
		LIMIT 1`), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return &e, nil
}

func (r *postRepository) List(ctx context.Context, params ListParams) ([]*Summary, error) {
	posts := []*Summary{}
	err := r.q.SelectContext(ctx, &posts, r.q.Rebind(`
		SELECT p.id,
		       p.name,
		       p.slug,
		       COALESCE(u.name, '') AS author_name,
		       p.date_created,
		       COALESCE(m.header_image_url, '') AS header_image_url
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		LEFT JOIN post_meta m ON m.post_id = p.id
		ORDER BY p.created_at DESC, p.id
		LIMIT ? OFFSET ?`), params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.GetContext(ctx, &n, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM posts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type metaRepository struct {
	q database.Querier
}

func (r *metaRepository) Insert(ctx context.Context, m *Meta) error {
	m.ID = uuid.New()
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO post_meta (id, post_id, post_title, meta_title, meta_description, header_image_url)
		VALUES (?, ?, ?, ?, ?, ?)`),
		m.ID, m.PostID, m.PostTitle, m.MetaTitle, m.MetaDescription, m.HeaderImage)
	if err != nil {
		return fmt.Errorf("insert post meta: %w", err)
	}
	return nil
}

func (r *metaRepository) DeleteByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM post_meta WHERE post_id = ?`), postID)
	if err != nil {
		return 0, fmt.Errorf("delete post meta: %w", err)
	}
	return res.RowsAffected()
}
