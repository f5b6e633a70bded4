package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/LianaVolkova/yatube/internal/httputil"
	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/service"
	"github.com/LianaVolkova/yatube/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add handles POST /posts/{id}/comment/
// Either way the client lands back on the post detail page: a valid
// comment is stored first, a blank one is dropped.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.Redirect(w, r, middleware.LoginPath)
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}
	form := model.CommentForm{Text: r.PostFormValue("text")}

	if _, err := h.commentService.Create(r.Context(), postID, userID, form); err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
			return
		case errors.Is(err, model.ErrCommentTextRequired):
			// Fall through to the redirect; nothing was stored.
		default:
			log.Printf("[ERROR] Add comment handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to add comment")
			return
		}
	}

	httputil.Redirect(w, r, fmt.Sprintf("/posts/%d/", postID))
}
