package model

import (
	"errors"
	"strings"
	"time"
)

// Comment is a reply attached to a post. Immutable once created.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  int64     `db:"author_id" json:"-"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Author *UserSummary `json:"author,omitempty"` // Joined field
}

// CommentForm holds the submitted comment form fields.
type CommentForm struct {
	Text string
}

// Validate returns a field->message map, empty when the form is valid.
func (f CommentForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "This field is required."
	}
	return errs
}

var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCommentTextRequired = errors.New("comment text is required")
)
