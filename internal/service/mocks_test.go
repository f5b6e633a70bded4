package service

import (
	"context"

	"github.com/LianaVolkova/yatube/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// The services depend on the repository INTERFACES, so the tests swap in
// mocks with per-test behavior instead of hitting a real database. The
// follow mock carries real edge state because the follow semantics
// (duplicate insert, missing delete) are exactly what the tests probe.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

type mockGroupRepository struct {
	createFn    func(ctx context.Context, group *model.Group) error
	getBySlugFn func(ctx context.Context, slug string) (*model.Group, error)
	listFn      func(ctx context.Context) ([]model.Group, error)
}

func (m *mockGroupRepository) Create(ctx context.Context, group *model.Group) error {
	if m.createFn != nil {
		return m.createFn(ctx, group)
	}
	return nil
}

func (m *mockGroupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) List(ctx context.Context) ([]model.Group, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockPostRepository struct {
	createFn        func(ctx context.Context, post *model.Post) error
	getByIDFn       func(ctx context.Context, postID int64) (*model.Post, error)
	updateFn        func(ctx context.Context, post *model.Post) error
	listAllFn       func(ctx context.Context) ([]model.Post, error)
	listByGroupFn   func(ctx context.Context, groupID int64) ([]model.Post, error)
	listByAuthorFn  func(ctx context.Context, authorID int64) ([]model.Post, error)
	listByAuthorsFn func(ctx context.Context, authorIDs []int64) ([]model.Post, error)
	countByAuthorFn func(ctx context.Context, authorID int64) (int, error)

	createCalls []*model.Post
	updateCalls []*model.Post
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	m.createCalls = append(m.createCalls, post)
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	post.ID = int64(len(m.createCalls))
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Update(ctx context.Context, post *model.Post) error {
	m.updateCalls = append(m.updateCalls, post)
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepository) ListByGroup(ctx context.Context, groupID int64) ([]model.Post, error) {
	if m.listByGroupFn != nil {
		return m.listByGroupFn(ctx, groupID)
	}
	return nil, nil
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	if m.listByAuthorFn != nil {
		return m.listByAuthorFn(ctx, authorID)
	}
	return nil, nil
}

func (m *mockPostRepository) ListByAuthors(ctx context.Context, authorIDs []int64) ([]model.Post, error) {
	if m.listByAuthorsFn != nil {
		return m.listByAuthorsFn(ctx, authorIDs)
	}
	return nil, nil
}

func (m *mockPostRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	if m.countByAuthorFn != nil {
		return m.countByAuthorFn(ctx, authorID)
	}
	return 0, nil
}

type mockCommentRepository struct {
	createFn      func(ctx context.Context, comment *model.Comment) error
	listByPostFn  func(ctx context.Context, postID int64) ([]model.Comment, error)
	countByPostFn func(ctx context.Context, postID int64) (int, error)

	createCalls []*model.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	m.createCalls = append(m.createCalls, comment)
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = int64(len(m.createCalls))
	return nil
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockCommentRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	if m.countByPostFn != nil {
		return m.countByPostFn(ctx, postID)
	}
	return 0, nil
}

// mockFollowRepository keeps real edge state so the idempotence of
// follow/unfollow can be observed, matching what the ON CONFLICT insert
// does in Postgres.
type mockFollowRepository struct {
	edges map[[2]int64]bool
}

func newMockFollowRepository() *mockFollowRepository {
	return &mockFollowRepository{edges: make(map[[2]int64]bool)}
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, authorID int64) (bool, error) {
	key := [2]int64{followerID, authorID}
	if m.edges[key] {
		return false, nil
	}
	m.edges[key] = true
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, authorID int64) error {
	delete(m.edges, [2]int64{followerID, authorID})
	return nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, authorID int64) (bool, error) {
	return m.edges[[2]int64{followerID, authorID}], nil
}

func (m *mockFollowRepository) AuthorIDs(ctx context.Context, followerID int64) ([]int64, error) {
	var ids []int64
	for key := range m.edges {
		if key[0] == followerID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func (m *mockFollowRepository) edgeCount() int {
	return len(m.edges)
}

type mockSessionRepository struct {
	createFn        func(ctx context.Context, session *model.Session) error
	getByIDFn       func(ctx context.Context, id string) (*model.Session, error)
	deleteFn        func(ctx context.Context, id string) error
	deleteExpiredFn func(ctx context.Context) (int64, error)

	deleteCalls []string
}

func (m *mockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrSessionNotFound
}

func (m *mockSessionRepository) Delete(ctx context.Context, id string) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}
