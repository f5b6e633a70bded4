package model

import "errors"

// Group is a named community a post may optionally belong to.
type Group struct {
	ID          int64  `db:"id" json:"id"`
	Slug        string `db:"slug" json:"slug"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
}

var (
	// ErrGroupNotFound is returned when no group exists for a slug
	ErrGroupNotFound = errors.New("group not found")
)
