package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/LianaVolkova/yatube/internal/metrics"
	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/repository"
)

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	metrics   metrics.Recorder
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	recorder metrics.Recorder,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		metrics:   recorder,
	}
}

// Create validates the form and inserts a new post for the author.
func (s *PostService) Create(ctx context.Context, authorID int64, form model.PostForm) (*model.Post, error) {
	if strings.TrimSpace(form.Text) == "" {
		return nil, model.ErrTextRequired
	}

	groupID, err := s.resolveGroup(ctx, form.GroupSlug)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID: authorID,
		GroupID:  groupID,
		Text:     form.Text,
		Author:   &model.UserSummary{ID: author.ID, Username: author.Username},
	}
	if form.ImageURL != "" {
		post.ImageURL = &form.ImageURL
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.metrics.RecordPostCreated()
	return post, nil
}

// Edit updates text, group, and image of the author's own post.
// CreatedAt and authorship never change.
func (s *PostService) Edit(ctx context.Context, postID, userID int64, form model.PostForm) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, model.ErrNotPostOwner
	}

	if strings.TrimSpace(form.Text) == "" {
		return nil, model.ErrTextRequired
	}

	groupID, err := s.resolveGroup(ctx, form.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = form.Text
	post.GroupID = groupID
	if form.ImageURL != "" {
		url := form.ImageURL
		post.ImageURL = &url
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID retrieves a single post with author and group.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.ListAll(ctx)
}

// ListByGroup resolves the slug and returns the group with its posts,
// newest first.
func (s *PostService) ListByGroup(ctx context.Context, slug string) (*model.Group, []model.Post, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}
	return group, posts, nil
}

// ListByAuthor resolves the username and returns the author with their
// posts, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, username string) (*model.User, []model.Post, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, nil, err
	}
	return author, posts, nil
}

// Groups lists every community, for the post form's group choices.
func (s *PostService) Groups(ctx context.Context) ([]model.Group, error) {
	return s.groupRepo.List(ctx)
}

// AuthorPostCount counts the author's posts at query time.
func (s *PostService) AuthorPostCount(ctx context.Context, authorID int64) (int, error) {
	return s.postRepo.CountByAuthor(ctx, authorID)
}

func (s *PostService) resolveGroup(ctx context.Context, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &group.ID, nil
}
