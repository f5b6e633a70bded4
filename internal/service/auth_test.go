package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/LianaVolkova/yatube/internal/config"
	"github.com/LianaVolkova/yatube/internal/model"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "auth-test-secret",
		SessionMaxAge: time.Hour,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	userRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			user.CreatedAt = time.Now()
			return nil
		},
	}
	svc := NewAuthService(userRepo, &mockSessionRepository{}, testAuthConfig())

	user, err := svc.Register(context.Background(), model.SignupRequest{
		Username: "leo",
		Password: "securepassword",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Username != "leo" {
		t.Errorf("username = %q, want %q", user.Username, "leo")
	}
	if user.PasswordHashed == "securepassword" {
		t.Error("password must be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte("securepassword")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	userRepo := &mockUserRepository{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewAuthService(userRepo, &mockSessionRepository{}, testAuthConfig())

	_, err := svc.Register(context.Background(), model.SignupRequest{Username: "leo", Password: "pw"})
	if !errors.Is(err, model.ErrUsernameExists) {
		t.Fatalf("err = %v, want ErrUsernameExists", err)
	}
}

func TestAuthService_Register_BlankFieldsRejected(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, &mockSessionRepository{}, testAuthConfig())

	for _, req := range []model.SignupRequest{
		{Username: "", Password: "pw"},
		{Username: "   ", Password: "pw"},
		{Username: "leo", Password: ""},
	} {
		if _, err := svc.Register(context.Background(), req); !errors.Is(err, model.ErrInvalidCredentials) {
			t.Errorf("Register(%q, %q): err = %v, want ErrInvalidCredentials", req.Username, req.Password, err)
		}
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	userRepo := &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 4, Username: username, PasswordHashed: string(hash)}, nil
		},
	}

	var stored *model.Session
	sessionRepo := &mockSessionRepository{
		createFn: func(ctx context.Context, session *model.Session) error {
			stored = session
			return nil
		},
	}
	svc := NewAuthService(userRepo, sessionRepo, testAuthConfig())

	token, user, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "leo",
		Password: "rightpassword",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != 4 {
		t.Errorf("user.ID = %d, want 4", user.ID)
	}
	if stored == nil {
		t.Fatal("expected a session row to be stored")
	}
	if stored.UserID != 4 {
		t.Errorf("session.UserID = %d, want 4", stored.UserID)
	}

	sid, userID, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if sid != stored.ID {
		t.Errorf("token sid = %q, want %q", sid, stored.ID)
	}
	if userID != 4 {
		t.Errorf("token user_id = %d, want 4", userID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	userRepo := &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 4, Username: username, PasswordHashed: string(hash)}, nil
		},
	}
	svc := NewAuthService(userRepo, &mockSessionRepository{}, testAuthConfig())

	_, _, err := svc.Login(context.Background(), model.LoginRequest{Username: "leo", Password: "wrong"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, &mockSessionRepository{}, testAuthConfig())

	_, _, err := svc.Login(context.Background(), model.LoginRequest{Username: "ghost", Password: "pw"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_ValidateToken_ChecksSessionRow(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	userRepo := &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 9, Username: username, PasswordHashed: string(hash)}, nil
		},
	}

	sessions := make(map[string]*model.Session)
	sessionRepo := &mockSessionRepository{
		createFn: func(ctx context.Context, session *model.Session) error {
			sessions[session.ID] = session
			return nil
		},
		getByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			if s, ok := sessions[id]; ok {
				return s, nil
			}
			return nil, model.ErrSessionNotFound
		},
	}
	svc := NewAuthService(userRepo, sessionRepo, testAuthConfig())

	token, _, err := svc.Login(context.Background(), model.LoginRequest{Username: "leo", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken with live session: %v", err)
	}
	if userID != 9 {
		t.Errorf("userID = %d, want 9", userID)
	}

	// A token whose session row was deleted must stop validating even
	// though its signature is still good.
	for id := range sessions {
		delete(sessions, id)
	}
	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound after session delete", err)
	}
}

func TestAuthService_ValidateToken_ExpiredSession(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	userRepo := &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 9, Username: username, PasswordHashed: string(hash)}, nil
		},
	}

	var stored *model.Session
	sessionRepo := &mockSessionRepository{
		createFn: func(ctx context.Context, session *model.Session) error {
			stored = session
			return nil
		},
		getByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			if stored != nil && stored.ID == id {
				return stored, nil
			}
			return nil, model.ErrSessionNotFound
		},
	}
	svc := NewAuthService(userRepo, sessionRepo, testAuthConfig())

	token, _, err := svc.Login(context.Background(), model.LoginRequest{Username: "leo", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	stored.ExpiresAt = time.Now().Add(-time.Minute)
	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound for expired session", err)
	}
}

func TestAuthService_Logout_DeletesSession(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	userRepo := &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 1, Username: username, PasswordHashed: string(hash)}, nil
		},
	}
	sessionRepo := &mockSessionRepository{}
	svc := NewAuthService(userRepo, sessionRepo, testAuthConfig())

	token, _, err := svc.Login(context.Background(), model.LoginRequest{Username: "leo", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessionRepo.deleteCalls) != 1 {
		t.Errorf("delete calls = %d, want 1", len(sessionRepo.deleteCalls))
	}
}

func TestAuthService_Logout_GarbageTokenIsFine(t *testing.T) {
	sessionRepo := &mockSessionRepository{}
	svc := NewAuthService(&mockUserRepository{}, sessionRepo, testAuthConfig())

	if err := svc.Logout(context.Background(), "not-a-jwt"); err != nil {
		t.Fatalf("Logout with garbage token should be silent, got: %v", err)
	}
	if len(sessionRepo.deleteCalls) != 0 {
		t.Errorf("delete calls = %d, want 0", len(sessionRepo.deleteCalls))
	}
}
