package repository

import (
	"context"

	"github.com/LianaVolkova/yatube/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// Update persists the author-editable fields: text, group, image.
	// CreatedAt and AuthorID are never touched.
	Update(ctx context.Context, post *model.Post) error
	ListAll(ctx context.Context) ([]model.Post, error)
	ListByGroup(ctx context.Context, groupID int64) ([]model.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error)
	// ListByAuthors returns posts by any of the given authors, newest
	// first. Used to derive the follow feed.
	ListByAuthors(ctx context.Context, authorIDs []int64) ([]model.Post, error)
	CountByAuthor(ctx context.Context, authorID int64) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
}

type FollowRepository interface {
	// Create inserts the (follower, author) edge unless it already
	// exists. Reports whether a row was actually inserted.
	Create(ctx context.Context, followerID, authorID int64) (bool, error)
	// Delete removes the edge; deleting a missing edge is not an error.
	Delete(ctx context.Context, followerID, authorID int64) error
	Exists(ctx context.Context, followerID, authorID int64) (bool, error)
	// AuthorIDs returns the users the given follower follows.
	AuthorIDs(ctx context.Context, followerID int64) ([]int64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
