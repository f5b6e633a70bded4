package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/LianaVolkova/yatube/internal/model"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, g *model.Group) error {
	query := `
		INSERT INTO groups (slug, title, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRowxContext(ctx, query, g.Slug, g.Title, g.Description).Scan(&g.ID); err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	query := `
		SELECT id, slug, title, description
		FROM groups
		WHERE slug = $1
	`

	var g model.Group
	err := r.db.GetContext(ctx, &g, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group by slug: %w", err)
	}

	return &g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]model.Group, error) {
	query := `SELECT id, slug, title, description FROM groups ORDER BY title`

	var groups []model.Group
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}
