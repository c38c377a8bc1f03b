package posts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyjsx/dashboard/internal/database/dbtest"
)

func TestSQLStore_InsertAndRead(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.SeedUser(t, db, "u1", "Ada")
	fixed := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	store := NewSQLStore(db, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	p := &Post{Name: "Hello", Slug: "hello", AuthorID: "u1"}
	require.NoError(t, store.Posts().Insert(ctx, p))
	require.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "2024-03-09", p.DateCreated.String())

	id, err := store.Posts().FindLatestIDByName(ctx, "Hello")
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)

	require.NoError(t, store.Meta().Insert(ctx, &Meta{
		PostID:          p.ID,
		PostTitle:       "Hello",
		MetaTitle:       "Hi",
		MetaDescription: "Desc",
		HeaderImage:     "img.png",
	}))

	got, err := store.Posts().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Slug)
	assert.Equal(t, "2024-03-09", got.DateCreated.String())

	entry, err := store.Posts().GetBySlug(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, p.ID, entry.PostID)
	assert.Equal(t, "Hi", entry.MetaTitle)
	assert.Equal(t, "img.png", entry.HeaderImage)
	assert.Equal(t, "Ada", entry.AuthorName)
}

func TestSQLStore_GetBySlugWithoutMeta(t *testing.T) {
	db := dbtest.Open(t)
	store := NewSQLStore(db)
	ctx := context.Background()

	require.NoError(t, store.Posts().Insert(ctx, &Post{Name: "Bare", Slug: "bare", AuthorID: "ghost"}))

	entry, err := store.Posts().GetBySlug(ctx, "bare")
	require.NoError(t, err)
	assert.Empty(t, entry.MetaTitle)
	assert.Empty(t, entry.AuthorName)
}

func TestSQLStore_NotFound(t *testing.T) {
	store := NewSQLStore(dbtest.Open(t))
	ctx := context.Background()

	_, err := store.Posts().FindLatestIDByName(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Posts().GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Posts().GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Posts().Delete(ctx, uuid.New()), ErrNotFound)
}

func TestSQLStore_DuplicateSlug(t *testing.T) {
	store := NewSQLStore(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, store.Posts().Insert(ctx, &Post{Name: "A", Slug: "same", AuthorID: "u1"}))
	err := store.Posts().Insert(ctx, &Post{Name: "B", Slug: "same", AuthorID: "u1"})
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestSQLStore_FindLatestIDByNamePicksNewest(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	old := &Post{Name: "Same", Slug: "same-1", AuthorID: "u1"}
	require.NoError(t, NewSQLStore(db, WithClock(func() time.Time { return base })).Posts().Insert(ctx, old))
	newer := &Post{Name: "Same", Slug: "same-2", AuthorID: "u1"}
	require.NoError(t, NewSQLStore(db, WithClock(func() time.Time { return base.Add(time.Minute) })).Posts().Insert(ctx, newer))

	id, err := NewSQLStore(db).Posts().FindLatestIDByName(ctx, "Same")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, id)
}

func TestSQLStore_ListAndCount(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.SeedUser(t, db, "u1", "Ada")
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, slug := range []string{"one", "two", "three"} {
		at := base.Add(time.Duration(i) * time.Hour)
		store := NewSQLStore(db, WithClock(func() time.Time { return at }))
		require.NoError(t, store.Posts().Insert(ctx, &Post{Name: slug, Slug: slug, AuthorID: "u1"}))
	}
	store := NewSQLStore(db)

	n, err := store.Posts().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	page, err := store.Posts().List(ctx, ListParams{Limit: 2, Offset: 0})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "three", page[0].Slug)
	assert.Equal(t, "Ada", page[0].AuthorName)
	assert.Equal(t, "two", page[1].Slug)

	rest, err := store.Posts().List(ctx, ListParams{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "one", rest[0].Slug)

	empty, err := store.Posts().List(ctx, ListParams{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSQLStore_InTxRollsBack(t *testing.T) {
	db := dbtest.Open(t)
	store := NewSQLStore(db)
	ctx := context.Background()

	err := store.InTx(ctx, func(tx Store) error {
		require.NoError(t, tx.Posts().Insert(ctx, &Post{Name: "Gone", Slug: "gone", AuthorID: "u1"}))
		// nested calls join the open transaction
		return tx.InTx(ctx, func(inner Store) error {
			return ErrAmbiguousPost
		})
	})
	assert.ErrorIs(t, err, ErrAmbiguousPost)
	assert.Zero(t, dbtest.Count(t, db, "posts", ""))
}

func TestSQLStore_DeleteMeta(t *testing.T) {
	db := dbtest.Open(t)
	store := NewSQLStore(db)
	ctx := context.Background()

	p := &Post{Name: "P", Slug: "p", AuthorID: "u1"}
	require.NoError(t, store.Posts().Insert(ctx, p))
	require.NoError(t, store.Meta().Insert(ctx, &Meta{PostID: p.ID, PostTitle: "P", HeaderImage: "p.png"}))

	n, err := store.Meta().DeleteByPostID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, store.Posts().Delete(ctx, p.ID))
	assert.Zero(t, dbtest.Count(t, db, "posts", ""))
}
