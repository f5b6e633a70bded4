package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/LianaVolkova/yatube/internal/config"
	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/repository"
)

// AuthService handles signup, login, and the DB-backed sessions behind
// the JWT cookie.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	config      *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      cfg,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:       username,
		PasswordHashed: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials, records a session row, and returns the
// signed token for the cookie.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, *model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return "", nil, model.ErrInvalidCredentials
	}

	session := &model.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.config.SessionMaxAge),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.signToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}

// Logout deletes the session row behind the token. An already-missing
// session is not an error; the cookie is cleared either way.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	sessionID, _, err := s.ParseToken(tokenString)
	if err != nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

// ValidateToken checks the JWT signature and then the session row
// behind it, so a logged-out token stops working even though its
// signature is still valid. Returns the user ID.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (int64, error) {
	sessionID, userID, err := s.ParseToken(tokenString)
	if err != nil {
		return 0, err
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if session.IsExpired() || session.UserID != userID {
		return 0, model.ErrSessionNotFound
	}

	return userID, nil
}

// ParseToken validates the JWT and returns the session ID and user ID.
func (s *AuthService) ParseToken(tokenString string) (string, int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", 0, model.ErrSessionNotFound
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, model.ErrSessionNotFound
	}

	sid, _ := claims["sid"].(string)
	userIDFloat, ok := claims["user_id"].(float64)
	if sid == "" || !ok {
		return "", 0, model.ErrSessionNotFound
	}

	return sid, int64(userIDFloat), nil
}

func (s *AuthService) signToken(session *model.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":     session.ID,
		"user_id": session.UserID,
		"exp":     session.ExpiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
