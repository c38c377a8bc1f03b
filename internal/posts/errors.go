package posts

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("post not found")
	ErrSlugExists     = errors.New("slug already exists")
	ErrValidation     = errors.New("validation failed")
	ErrNoFile         = errors.New("no file uploaded")
	ErrUpload         = errors.New("upload failed")
	ErrDatabase       = errors.New("database error")
	ErrAuthorNotFound = errors.New("author not found")
	// ErrAmbiguousPost means the name lookup after an insert found a
	// different post than the one just written.
	ErrAmbiguousPost = errors.New("post id resolution is ambiguous")
)

const (
	msgMissingFields  = "Missing Fields. Failed to Create Post."
	msgNoFile         = "No file uploaded"
	msgUpload         = "Upload error: Failed to upload file."
	msgCreatePost     = "Database Error: Failed to Create Post."
	msgSelectPost     = "Database Error: Failed to Select Post."
	msgCreatePostMeta = "Database Error: Failed to Create Post Meta."
	msgDeletePost     = "Database Error: Failed to Delete Post."
)

// Stage is a step of the post creation workflow.
type Stage int

const (
	StageValidating Stage = iota
	StageUploading
	StageInsertingPost
	StageResolvingID
	StageInsertingMetadata
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageValidating:
		return "validating"
	case StageUploading:
		return "uploading"
	case StageInsertingPost:
		return "inserting_post"
	case StageResolvingID:
		return "resolving_id"
	case StageInsertingMetadata:
		return "inserting_metadata"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Failure is the structured result of a failed workflow. Kind is one of
// ErrValidation, ErrNoFile, ErrUpload or ErrDatabase; errors.Is matches both
// Kind and the underlying cause.
type Failure struct {
	Stage   Stage
	Kind    error
	Message string
	Fields  map[string][]string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v: %v", f.Stage, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Stage, f.Kind)
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}
