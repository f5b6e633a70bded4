package model

import (
	"errors"
	"strings"
	"time"
)

// Post is an authored text entry, optionally grouped and optionally
// carrying an image reference. CreatedAt is assigned once at insert and
// is the descending sort key for every listing.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	GroupID   *int64    `db:"group_id" json:"group_id,omitempty"`
	Text      string    `db:"text" json:"text"`
	ImageURL  *string   `db:"image_url" json:"image_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not columns of the posts table)
	Author *UserSummary `json:"author,omitempty"`
	Group  *Group       `json:"group,omitempty"`
}

// PostForm holds the submitted create/edit form fields. Group and image
// are optional; text is required.
type PostForm struct {
	Text      string
	GroupSlug string
	ImageURL  string
}

// Validate returns a field->message map, empty when the form is valid.
func (f PostForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "This field is required."
	}
	return errs
}

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the author of this post")
	ErrTextRequired = errors.New("post text is required")
)
