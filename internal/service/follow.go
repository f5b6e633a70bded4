package service

import (
	"context"
	"log"

	"github.com/LianaVolkova/yatube/internal/metrics"
	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/pagination"
	"github.com/LianaVolkova/yatube/internal/repository"
)

// FollowService maintains the follow relation and derives the feed from
// it. Self-follow, duplicate follow, and unfollow of a missing edge are
// all silent no-ops; the storage layer's uniqueness constraint backs the
// idempotence under concurrent requests.
type FollowService struct {
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	metrics    metrics.Recorder
}

func NewFollowService(
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	recorder metrics.Recorder,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
		metrics:    recorder,
	}
}

// Follow creates the (follower, author) edge. Following yourself or
// someone you already follow changes nothing and returns success.
func (s *FollowService) Follow(ctx context.Context, followerID, authorID int64) error {
	if followerID == authorID {
		return nil
	}

	inserted, err := s.followRepo.Create(ctx, followerID, authorID)
	if err != nil {
		return err
	}

	if inserted {
		s.metrics.RecordFollowCreated()
		log.Printf("[FollowService] Follow: follower=%d author=%d", followerID, authorID)
	}
	return nil
}

// FollowUsername resolves the author by username and follows them. The
// resolved author is returned so callers can tell a self-follow apart
// from a regular one.
func (s *FollowService) FollowUsername(ctx context.Context, followerID int64, username string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return author, s.Follow(ctx, followerID, author.ID)
}

// UnfollowUsername resolves the author by username and removes the edge.
func (s *FollowService) UnfollowUsername(ctx context.Context, followerID int64, username string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return author, s.Unfollow(ctx, followerID, author.ID)
}

// Unfollow deletes the edge if present.
func (s *FollowService) Unfollow(ctx context.Context, followerID, authorID int64) error {
	return s.followRepo.Delete(ctx, followerID, authorID)
}

// IsFollowing reports whether the edge (user, author) exists.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	return s.followRepo.Exists(ctx, userID, authorID)
}

// Feed returns the requested page of posts authored by users the given
// user follows, newest first. The user's own posts never appear: the
// only path would be a self-follow edge, which cannot exist.
func (s *FollowService) Feed(ctx context.Context, userID int64, page int) (pagination.Page[model.Post], error) {
	authorIDs, err := s.followRepo.AuthorIDs(ctx, userID)
	if err != nil {
		return pagination.Page[model.Post]{}, err
	}

	if len(authorIDs) == 0 {
		return pagination.Paginate([]model.Post{}, page), nil
	}

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs)
	if err != nil {
		return pagination.Page[model.Post]{}, err
	}

	return pagination.Paginate(posts, page), nil
}
