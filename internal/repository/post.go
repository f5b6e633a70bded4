package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/LianaVolkova/yatube/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post. The database assigns id and created_at;
// created_at is immutable from then on.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (author_id, group_id, text, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, p.AuthorID, p.GroupID, p.Text, p.ImageURL)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post with its author and group joined.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := selectPosts + ` WHERE p.id = $1`

	var row postRow
	err := r.db.GetContext(ctx, &row, query, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	post := row.toPost()
	return &post, nil
}

// Update persists the author-editable fields only.
func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	query := `
		UPDATE posts
		SET text = $1, group_id = $2, image_url = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, p.Text, p.GroupID, p.ImageURL, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	return r.list(ctx, selectPosts+orderNewestFirst)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID int64) ([]model.Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.group_id = $1`+orderNewestFirst, groupID)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	return r.list(ctx, selectPosts+` WHERE p.author_id = $1`+orderNewestFirst, authorID)
}

// ListByAuthors returns posts by any of the given authors, newest first.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []int64) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return []model.Post{}, nil
	}
	return r.list(ctx, selectPosts+` WHERE p.author_id = ANY($1)`+orderNewestFirst, pq.Array(authorIDs))
}

// CountByAuthor counts the author's posts at query time; nothing is
// cached or denormalized.
func (r *postRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("count posts by author: %w", err)
	}
	return count, nil
}

const selectPosts = `
	SELECT p.id, p.author_id, p.group_id, p.text, p.image_url, p.created_at,
	       u.id AS "author.id", u.username AS "author.username",
	       g.id AS "group.id", g.slug AS "group.slug", g.title AS "group.title",
	       g.description AS "group.description"
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
`

const orderNewestFirst = ` ORDER BY p.created_at DESC, p.id DESC`

// postRow scans a post with its joined author and optional group.
type postRow struct {
	ID        int64     `db:"id"`
	AuthorID  int64     `db:"author_id"`
	GroupID   *int64    `db:"group_id"`
	Text      string    `db:"text"`
	ImageURL  *string   `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`

	AuthorUserID   int64   `db:"author.id"`
	AuthorUsername string  `db:"author.username"`
	JoinedGroupID    *int64  `db:"group.id"`
	GroupSlug        *string `db:"group.slug"`
	GroupTitle       *string `db:"group.title"`
	GroupDescription *string `db:"group.description"`
}

func (row postRow) toPost() model.Post {
	post := model.Post{
		ID:        row.ID,
		AuthorID:  row.AuthorID,
		GroupID:   row.GroupID,
		Text:      row.Text,
		ImageURL:  row.ImageURL,
		CreatedAt: row.CreatedAt,
		Author: &model.UserSummary{
			ID:       row.AuthorUserID,
			Username: row.AuthorUsername,
		},
	}
	if row.JoinedGroupID != nil {
		post.Group = &model.Group{
			ID:          *row.JoinedGroupID,
			Slug:        *row.GroupSlug,
			Title:       *row.GroupTitle,
			Description: *row.GroupDescription,
		}
	}
	return post
}

func (r *postRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Post, error) {
	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts, nil
}
