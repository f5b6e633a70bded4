package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/LianaVolkova/yatube/internal/metrics"
	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	metrics     metrics.Recorder
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	recorder metrics.Recorder,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		metrics:     recorder,
	}
}

// Create validates and attaches a comment to an existing post.
func (s *CommentService) Create(ctx context.Context, postID, authorID int64, form model.CommentForm) (*model.Comment, error) {
	if strings.TrimSpace(form.Text) == "" {
		return nil, model.ErrCommentTextRequired
	}

	// The post must exist; comments never dangle.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     form.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.metrics.RecordCommentCreated()
	return comment, nil
}

// ListByPost returns all comments on a post, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
