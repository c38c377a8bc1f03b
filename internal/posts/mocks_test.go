package posts

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/jeremyjsx/dashboard/internal/events"
	"github.com/jeremyjsx/dashboard/internal/storage"
)

type mockRepo struct {
	insert             func(ctx context.Context, p *Post) error
	findLatestIDByName func(ctx context.Context, name string) (uuid.UUID, error)
	getByID            func(ctx context.Context, id uuid.UUID) (*Post, error)
	getBySlug          func(ctx context.Context, slug string) (*Entry, error)
	list               func(ctx context.Context, params ListParams) ([]*Summary, error)
	count              func(ctx context.Context) (int64, error)
	delete             func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepo) Insert(ctx context.Context, p *Post) error {
	if m.insert != nil {
		return m.insert(ctx, p)
	}
	p.ID = uuid.New()
	return nil
}

func (m *mockRepo) FindLatestIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	if m.findLatestIDByName != nil {
		return m.findLatestIDByName(ctx, name)
	}
	return uuid.Nil, ErrNotFound
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *mockRepo) GetBySlug(ctx context.Context, slug string) (*Entry, error) {
	if m.getBySlug != nil {
		return m.getBySlug(ctx, slug)
	}
	return nil, ErrNotFound
}

func (m *mockRepo) List(ctx context.Context, params ListParams) ([]*Summary, error) {
	if m.list != nil {
		return m.list(ctx, params)
	}
	return nil, nil
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	if m.count != nil {
		return m.count(ctx)
	}
	return 0, nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return nil
}

type mockMetaRepo struct {
	insert         func(ctx context.Context, m *Meta) error
	deleteByPostID func(ctx context.Context, postID uuid.UUID) (int64, error)
}

func (m *mockMetaRepo) Insert(ctx context.Context, meta *Meta) error {
	if m.insert != nil {
		return m.insert(ctx, meta)
	}
	return nil
}

func (m *mockMetaRepo) DeleteByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	if m.deleteByPostID != nil {
		return m.deleteByPostID(ctx, postID)
	}
	return 0, nil
}

// mockStore runs InTx without a transaction and counts how often it was
// entered.
type mockStore struct {
	posts *mockRepo
	meta  *mockMetaRepo
	txs   int
}

func newMockStore() *mockStore {
	return &mockStore{posts: &mockRepo{}, meta: &mockMetaRepo{}}
}

func (m *mockStore) Posts() Repository    { return m.posts }
func (m *mockStore) Meta() MetaRepository { return m.meta }

func (m *mockStore) InTx(_ context.Context, fn func(tx Store) error) error {
	m.txs++
	return fn(m)
}

type mockAuthors struct {
	exists func(ctx context.Context, id string) (bool, error)
}

func (m *mockAuthors) Exists(ctx context.Context, id string) (bool, error) {
	if m.exists != nil {
		return m.exists(ctx, id)
	}
	return true, nil
}

type mockStorage struct {
	upload   func(ctx context.Context, key string, body io.Reader, contentType string) error
	download func(ctx context.Context, key string) (io.ReadCloser, error)
	delete   func(ctx context.Context, key string) error
	exists   func(ctx context.Context, key string) (bool, error)
}

func (m *mockStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if m.upload != nil {
		return m.upload(ctx, key, body, contentType)
	}
	return nil
}

func (m *mockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.download != nil {
		return m.download(ctx, key)
	}
	return nil, storage.ErrNotFound
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	if m.delete != nil {
		return m.delete(ctx, key)
	}
	return nil
}

func (m *mockStorage) Exists(ctx context.Context, key string) (bool, error) {
	if m.exists != nil {
		return m.exists(ctx, key)
	}
	return false, nil
}

type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.PostEvent
	err    error
}

func (r *recordingPublisher) PublishPostEvent(_ context.Context, e events.PostEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}
