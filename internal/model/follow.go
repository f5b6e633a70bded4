package model

import "time"

// Follow is a directed edge: follower reads author. The pair is unique
// and a user never follows themselves; both are enforced at the storage
// layer as well as in the service.
type Follow struct {
	FollowerID int64     `db:"follower_id" json:"follower_id"`
	AuthorID   int64     `db:"author_id" json:"author_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the author projection embedded in posts and comments.
type UserSummary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}
