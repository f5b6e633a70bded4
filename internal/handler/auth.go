package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/LianaVolkova/yatube/internal/config"
	"github.com/LianaVolkova/yatube/internal/httputil"
	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	config      *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		config:      cfg,
	}
}

// LoginForm handles GET /auth/login/
// Returns the blank login form; next is echoed so the form can carry it.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"form": map[string]string{"username": "", "password": ""},
		"next": r.URL.Query().Get("next"),
	})
}

// Login handles POST /auth/login/
// On success sets the session cookie and redirects to next (or the
// index). Bad credentials re-render the form.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	token, _, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
				"form":   map[string]string{"username": req.Username},
				"errors": map[string]string{"__all__": "Please enter a correct username and password."},
			})
			return
		}
		log.Printf("[ERROR] Login handler: %v", err)
		httputil.WriteInternalError(w, "Failed to log in")
		return
	}

	h.setSessionCookie(w, token)

	next := r.PostFormValue("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}
	httputil.Redirect(w, r, next)
}

// Signup handles POST /auth/signup/
// Creates the account and sends the new user to the login page.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.SignupRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	_, err := h.authService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
				"form":   map[string]string{"username": req.Username},
				"errors": map[string]string{"username": "A user with that username already exists."},
			})
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
				"form":   map[string]string{"username": req.Username},
				"errors": map[string]string{"__all__": "Username and password are required."},
			})
		default:
			log.Printf("[ERROR] Signup handler: %v", err)
			httputil.WriteInternalError(w, "Failed to sign up")
		}
		return
	}

	httputil.Redirect(w, r, "/auth/login/")
}

// Logout handles POST /auth/logout/
// Drops the session row, clears the cookie, redirects to the index.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			log.Printf("[ERROR] Logout handler: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	httputil.Redirect(w, r, "/")
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.config.SessionMaxAge),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
