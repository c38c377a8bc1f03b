package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePostCreated = "post.created"
	TypePostDeleted = "post.deleted"
)

type PostPayload struct {
	PostID uuid.UUID `json:"post_id"`
	Slug   string    `json:"slug"`
	Title  string    `json:"title"`
}

type PostEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   PostPayload `json:"payload"`
}

func NewPostCreated(postID uuid.UUID, slug, title string) PostEvent {
	return newPostEvent(TypePostCreated, postID, slug, title)
}

func NewPostDeleted(postID uuid.UUID, slug, title string) PostEvent {
	return newPostEvent(TypePostDeleted, postID, slug, title)
}

func newPostEvent(typ string, postID uuid.UUID, slug, title string) PostEvent {
	return PostEvent{
		Type:      typ,
		Timestamp: time.Now().UTC(),
		Payload: PostPayload{
			PostID: postID,
			Slug:   slug,
			Title:  title,
		},
	}
}
