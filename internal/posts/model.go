package posts

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jeremyjsx/dashboard/internal/database"
)

type Post struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Slug        string        `db:"slug" json:"slug"`
	AuthorID    string        `db:"user_id" json:"author_id"`
	DateCreated database.Date `db:"date_created" json:"date_created"`
	CreatedAt   time.Time     `db:"created_at" json:"-"`
}

// Meta is the SEO and header image record attached to a post.
type Meta struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PostID          uuid.UUID `db:"post_id" json:"post_id"`
	PostTitle       string    `db:"post_title" json:"post_title"`
	MetaTitle       string    `db:"meta_title" json:"meta_title"`
	MetaDescription string    `db:"meta_description" json:"meta_description"`
	HeaderImage     string    `db:"header_image_url" json:"header_image_url"`
}

// Entry is a post as the public blog page reads it.
type Entry struct {
	PostID          uuid.UUID     `db:"post_id" json:"post_id"`
	Slug            string        `db:"slug" json:"slug"`
	PostTitle       string        `db:"post_title" json:"post_title"`
	MetaTitle       string        `db:"meta_title" json:"meta_title"`
	MetaDescription string        `db:"meta_description" json:"meta_description"`
	HeaderImage     string        `db:"header_image_url" json:"header_image_url"`
	AuthorName      string        `db:"author_name" json:"author_name"`
	DateCreated     database.Date `db:"date_created" json:"date_created"`
	ImageURL        string        `db:"-" json:"image_url,omitempty"`
}

// Summary is one row of the dashboard posts table.
type Summary struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	Slug        string        `db:"slug" json:"slug"`
	AuthorName  string        `db:"author_name" json:"author_name"`
	DateCreated database.Date `db:"date_created" json:"date_created"`
	HeaderImage string        `db:"header_image_url" json:"header_image_url"`
}

type ListParams struct {
	Limit  int
	Offset int
}

type ListResult struct {
	Posts      []*Summary `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	TotalPages int        `json:"total_pages"`
}

// Upload is the file part of a post submission. It is read once.
type Upload struct {
	Name        string
	Body        io.Reader
	Size        int64
	ContentType string
}

// Submission is one post form as submitted by the dashboard. Values holds
// only the fields that were present in the request.
type Submission struct {
	Values map[string]string
	File   *Upload
}

// Outcome tells the caller where to send the user after a successful write.
type Outcome struct {
	PostID      uuid.UUID `json:"post_id"`
	Slug        string    `json:"slug"`
	HeaderImage string    `json:"header_image_url"`
	Redirect    string    `json:"redirect"`
}
