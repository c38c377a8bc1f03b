package posts

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jeremyjsx/dashboard/internal/cache"
	"github.com/jeremyjsx/dashboard/internal/events"
	"github.com/jeremyjsx/dashboard/internal/storage"
)

// ListingPath is the dashboard route whose cached data changes when a post is
// created or deleted.
const ListingPath = "/dashboard/posts"

// Workflow turns one post form submission into an uploaded header image, a
// posts row and its post_meta row.
type Workflow struct {
	store     Store
	authors   AuthorLookup
	files     storage.Storage
	cache     cache.Invalidator
	publisher events.Publisher
	logger    *slog.Logger
}

func NewWorkflow(store Store, authors AuthorLookup, files storage.Storage, invalidator cache.Invalidator, publisher events.Publisher, logger *slog.Logger) *Workflow {
	return &Workflow{
		store:     store,
		authors:   authors,
		files:     files,
		cache:     invalidator,
		publisher: publisher,
		logger:    logger,
	}
}

// CreatePost runs the creation stages in order and stops at the first
// failure, which is always returned as a *Failure. Nothing is written before
// validation passes and no row is written if the upload fails.
func (w *Workflow) CreatePost(ctx context.Context, sub Submission) (*Outcome, error) {
	stage := StageValidating
	logger := w.logger.With("slug", sub.Values[FieldSlug])

	result := ValidateSubmission(sub.Values)
	if !result.Success {
		return nil, &Failure{Stage: stage, Kind: ErrValidation, Message: result.Message, Fields: result.Errors}
	}
	fields := result.Fields

	ok, err := w.authors.Exists(ctx, fields.AuthorID)
	if err != nil {
		logger.Error("author lookup failed", "error", err)
		return nil, &Failure{Stage: stage, Kind: ErrDatabase, Message: msgSelectPost, Err: err}
	}
	if !ok {
		return nil, &Failure{
			Stage:   stage,
			Kind:    ErrValidation,
			Message: msgMissingFields,
			Fields:  map[string][]string{FieldUserID: {"Please select a user."}},
			Err:     ErrAuthorNotFound,
		}
	}

	stage = StageUploading
	if sub.File == nil || sub.File.Name == "" || sub.File.Body == nil {
		return nil, &Failure{Stage: stage, Kind: ErrNoFile, Message: msgNoFile}
	}
	fileName := sub.File.Name
	if err := w.files.Upload(ctx, fileName, sub.File.Body, sub.File.ContentType); err != nil {
		logger.Error("upload failed", "file", fileName, "error", err)
		return nil, &Failure{Stage: stage, Kind: ErrUpload, Message: msgUpload, Err: err}
	}

	post := &Post{
		Name:     fields.Title,
		Slug:     fields.Slug,
		AuthorID: fields.AuthorID,
	}
	// Insert, lookup and metadata share one transaction: a failed lookup or
	// metadata insert rolls the post back, so no post is left without its
	// metadata. Only the uploaded file can be orphaned.
	err = w.store.InTx(ctx, func(tx Store) error {
		stage = StageInsertingPost
		if err := tx.Posts().Insert(ctx, post); err != nil {
			return &Failure{Stage: stage, Kind: ErrDatabase, Message: msgCreatePost, Err: err}
		}

		stage = StageResolvingID
		id, err := tx.Posts().FindLatestIDByName(ctx, post.Name)
		if err != nil {
			return &Failure{Stage: stage, Kind: ErrDatabase, Message: msgSelectPost, Err: err}
		}
		if id != post.ID {
			return &Failure{Stage: stage, Kind: ErrDatabase, Message: msgSelectPost, Err: ambiguous(post.ID, id)}
		}

		stage = StageInsertingMetadata
		meta := &Meta{
			PostID:          id,
			PostTitle:       post.Name,
			MetaTitle:       fields.MetaTitle,
			MetaDescription: fields.MetaDescription,
			HeaderImage:     fileName,
		}
		if err := tx.Meta().Insert(ctx, meta); err != nil {
			return &Failure{Stage: stage, Kind: ErrDatabase, Message: msgCreatePostMeta, Err: err}
		}
		return nil
	})
	if err != nil {
		var f *Failure
		if !errors.As(err, &f) {
			// commit failed after every statement succeeded
			f = &Failure{Stage: stage, Kind: ErrDatabase, Message: msgCreatePostMeta, Err: err}
		}
		logger.Error("create post failed", "stage", f.Stage.String(), "orphaned_file", fileName, "error", f.Err)
		return nil, f
	}

	w.cache.Invalidate(ctx, ListingPath)
	if err := w.publisher.PublishPostEvent(ctx, events.NewPostCreated(post.ID, post.Slug, post.Name)); err != nil {
		logger.Warn("publish post.created failed", "post_id", post.ID, "error", err)
	}
	logger.Info("post created", "post_id", post.ID, "file", fileName)

	return &Outcome{
		PostID:      post.ID,
		Slug:        post.Slug,
		HeaderImage: fileName,
		Redirect:    ListingPath,
	}, nil
}

type ambiguousError struct {
	inserted uuid.UUID
	resolved uuid.UUID
}

func ambiguous(inserted, resolved uuid.UUID) error {
	return &ambiguousError{inserted: inserted, resolved: resolved}
}

func (e *ambiguousError) Error() string {
	return ErrAmbiguousPost.Error() + ": inserted " + e.inserted.String() + ", name resolves to " + e.resolved.String()
}

func (e *ambiguousError) Unwrap() error { return ErrAmbiguousPost }
