package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LianaVolkova/yatube/internal/cache"
	"github.com/LianaVolkova/yatube/internal/httputil"
	"github.com/LianaVolkova/yatube/internal/metrics"
	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/pagination"
	"github.com/LianaVolkova/yatube/internal/service"
	"github.com/LianaVolkova/yatube/internal/transport/http/middleware"
)

type PostHandler struct {
	postService    *service.PostService
	commentService *service.CommentService
	followService  *service.FollowService
	pageCache      cache.PageCache
	cacheTTL       time.Duration
	metrics        metrics.Recorder
}

func NewPostHandler(
	postService *service.PostService,
	commentService *service.CommentService,
	followService *service.FollowService,
	pageCache cache.PageCache,
	cacheTTL time.Duration,
	recorder metrics.Recorder,
) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
		followService:  followService,
		pageCache:      pageCache,
		cacheTTL:       cacheTTL,
		metrics:        recorder,
	}
}

// Index handles GET /
// The rendered page is memoized for the configured TTL, keyed by request
// URI so each page number caches independently. Within the window the
// stored bytes are served verbatim even if posts changed underneath.
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	body, hit, err := h.pageCache.GetOrRender(r.Context(), r.URL.RequestURI(), h.cacheTTL, func() ([]byte, error) {
		posts, err := h.postService.ListAll(r.Context())
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]interface{}{
			"page": pagination.Paginate(posts, page),
		})
	})
	if err != nil {
		log.Printf("[ERROR] Index handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load posts")
		return
	}

	if hit {
		h.metrics.RecordPageCacheHit()
	} else {
		h.metrics.RecordPageCacheMiss()
	}
	httputil.WriteBytes(w, http.StatusOK, body)
}

// GroupPosts handles GET /group/{slug}/
func (h *PostHandler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	group, posts, err := h.postService.ListByGroup(r.Context(), slug)
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			httputil.WriteNotFound(w, "Group not found")
			return
		}
		log.Printf("[ERROR] GroupPosts handler: slug=%s err=%v", slug, err)
		httputil.WriteInternalError(w, "Failed to load group posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"group": group,
		"page":  pagination.Paginate(posts, page),
	})
}

// Profile handles GET /profile/{username}/
// Shows the author's posts with the total count, plus the follow status
// when the viewer is authenticated.
func (h *PostHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	author, posts, err := h.postService.ListByAuthor(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Profile handler: username=%s err=%v", username, err)
		httputil.WriteInternalError(w, "Failed to load profile")
		return
	}

	following := false
	if viewerID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		following, err = h.followService.IsFollowing(r.Context(), viewerID, author.ID)
		if err != nil {
			log.Printf("[ERROR] Profile follow status: username=%s err=%v", username, err)
			following = false
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"author":       author,
		"posts_number": len(posts),
		"page":         pagination.Paginate(posts, page),
		"following":    following,
	})
}

// Detail handles GET /posts/{id}/
// A single post with its comments, the author's total post count, and a
// blank comment form.
func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	post, ok := h.lookupPost(w, r)
	if !ok {
		return
	}

	postsNumber, err := h.postService.AuthorPostCount(r.Context(), post.AuthorID)
	if err != nil {
		log.Printf("[ERROR] Detail post count: post=%d err=%v", post.ID, err)
		httputil.WriteInternalError(w, "Failed to load post")
		return
	}

	comments, err := h.commentService.ListByPost(r.Context(), post.ID)
	if err != nil {
		log.Printf("[ERROR] Detail comments: post=%d err=%v", post.ID, err)
		httputil.WriteInternalError(w, "Failed to load comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"post":         post,
		"posts_number": postsNumber,
		"comments":     comments,
		"form":         map[string]string{"text": ""},
	})
}

// CreateForm handles GET /create/
func (h *PostHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	groups, err := h.postService.Groups(r.Context())
	if err != nil {
		log.Printf("[ERROR] CreateForm handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load form")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"form":   map[string]string{"text": "", "group": "", "image_url": ""},
		"groups": groups,
	})
}

// Create handles POST /create/
// A valid form creates exactly one post and redirects to the author's
// profile; an invalid one re-renders the form with messages and creates
// nothing.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.Redirect(w, r, middleware.LoginPath)
		return
	}

	form, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		h.renderFormErrors(w, form, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, form)
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			h.renderFormErrors(w, form, map[string]string{"group": "Select a valid group."})
			return
		}
		log.Printf("[ERROR] Create post handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	httputil.Redirect(w, r, fmt.Sprintf("/profile/%s/", post.Author.Username))
}

// EditForm handles GET /posts/{id}/edit/
// Only the author sees the edit form; anyone else is bounced to the
// read-only detail view.
func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	post, ok := h.lookupPost(w, r)
	if !ok {
		return
	}

	if post.AuthorID != userID {
		httputil.Redirect(w, r, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	groups, err := h.postService.Groups(r.Context())
	if err != nil {
		log.Printf("[ERROR] EditForm handler: post=%d err=%v", post.ID, err)
		httputil.WriteInternalError(w, "Failed to load form")
		return
	}

	form := map[string]string{"text": post.Text, "group": "", "image_url": ""}
	if post.Group != nil {
		form["group"] = post.Group.Slug
	}
	if post.ImageURL != nil {
		form["image_url"] = *post.ImageURL
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"form":    form,
		"groups":  groups,
		"is_edit": true,
		"post":    post,
	})
}

// Edit handles POST /posts/{id}/edit/
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return
	}

	form, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		h.renderFormErrors(w, form, errs)
		return
	}

	post, err := h.postService.Edit(r.Context(), postID, userID, form)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			// Not an error: non-authors get the read-only view.
			httputil.Redirect(w, r, fmt.Sprintf("/posts/%d/", postID))
		case errors.Is(err, model.ErrGroupNotFound):
			h.renderFormErrors(w, form, map[string]string{"group": "Select a valid group."})
		default:
			log.Printf("[ERROR] Edit post handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w, "Failed to edit post")
		}
		return
	}

	httputil.Redirect(w, r, fmt.Sprintf("/posts/%d/", post.ID))
}

func (h *PostHandler) lookupPost(w http.ResponseWriter, r *http.Request) (*model.Post, bool) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return nil, false
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return nil, false
		}
		log.Printf("[ERROR] lookup post: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w, "Failed to load post")
		return nil, false
	}
	return post, true
}

func (h *PostHandler) parsePostForm(w http.ResponseWriter, r *http.Request) (model.PostForm, bool) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return model.PostForm{}, false
	}
	return model.PostForm{
		Text:      r.PostFormValue("text"),
		GroupSlug: r.PostFormValue("group"),
		ImageURL:  r.PostFormValue("image_url"),
	}, true
}

func (h *PostHandler) renderFormErrors(w http.ResponseWriter, form model.PostForm, errs map[string]string) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"form": map[string]string{
			"text":      form.Text,
			"group":     form.GroupSlug,
			"image_url": form.ImageURL,
		},
		"errors": errs,
	})
}
