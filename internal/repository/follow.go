package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge unless it already exists. ON CONFLICT makes
// the check-then-act race in the service benign: the second insert is
// suppressed instead of failing.
func (r *followRepository) Create(ctx context.Context, followerID, authorID int64) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, author_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, followerID, authorID)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// Delete removes the edge. A missing edge is a no-op, not an error.
func (r *followRepository) Delete(ctx context.Context, followerID, authorID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND author_id = $2`
	if _, err := r.db.ExecContext(ctx, query, followerID, authorID); err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, authorID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND author_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, authorID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

// AuthorIDs returns the users the given follower follows.
func (r *followRepository) AuthorIDs(ctx context.Context, followerID int64) ([]int64, error) {
	query := `SELECT author_id FROM follows WHERE follower_id = $1`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, followerID); err != nil {
		return nil, fmt.Errorf("failed to get followed authors: %w", err)
	}
	return ids, nil
}
