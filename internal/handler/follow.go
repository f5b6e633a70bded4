package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LianaVolkova/yatube/internal/httputil"
	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/pagination"
	"github.com/LianaVolkova/yatube/internal/service"
	"github.com/LianaVolkova/yatube/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Feed handles GET /follow/
// Posts from followed authors only, newest first. An empty page for
// users who follow no one.
func (h *FollowHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.Redirect(w, r, middleware.LoginPath)
		return
	}

	page := pagination.ParsePage(r.URL.Query().Get("page"))

	feed, err := h.followService.Feed(r.Context(), userID, page)
	if err != nil {
		log.Printf("[ERROR] Feed handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to load feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page": feed,
	})
}

// Follow handles POST /profile/{username}/follow/
// Self-follow is a silent no-op that sends the user to their feed;
// otherwise the edge is ensured and the user lands on the index.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.Redirect(w, r, middleware.LoginPath)
		return
	}

	username := chi.URLParam(r, "username")
	author, err := h.followService.FollowUsername(r.Context(), userID, username)
	if err != nil {
		h.writeFollowError(w, "Follow", username, err)
		return
	}

	if author.ID == userID {
		httputil.Redirect(w, r, "/follow/")
		return
	}
	httputil.Redirect(w, r, "/")
}

// Unfollow handles POST /profile/{username}/unfollow/
// Removing a missing edge succeeds; the user always lands on the feed.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.Redirect(w, r, middleware.LoginPath)
		return
	}

	username := chi.URLParam(r, "username")
	if _, err := h.followService.UnfollowUsername(r.Context(), userID, username); err != nil {
		h.writeFollowError(w, "Unfollow", username, err)
		return
	}

	httputil.Redirect(w, r, "/follow/")
}

func (h *FollowHandler) writeFollowError(w http.ResponseWriter, op, username string, err error) {
	if errors.Is(err, model.ErrUserNotFound) {
		httputil.WriteNotFound(w, "User not found")
		return
	}
	log.Printf("[ERROR] %s handler: username=%s err=%v", op, username, err)
	httputil.WriteInternalError(w, "Failed to update follow")
}
