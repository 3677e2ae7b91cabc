package service

import (
	"errors"
	"testing"
	"time"

	"srmlab_backend/internal/config"
	"srmlab_backend/internal/model"
	"srmlab_backend/internal/util"

	"gorm.io/gorm"
)

type fakeUserRepo struct {
	nextID     uint
	byEmail    map[string]*model.User
	lastLogins map[uint]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User), lastLogins: make(map[uint]int)}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.nextID++
	user.ID = r.nextID
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateLastLogin(userID uint) error {
	r.lastLogins[userID]++
	return nil
}

func newAuthService(repo *fakeUserRepo) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	return NewAuthService(repo, cfg)
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Role:     model.Teacher,
	}
}

func TestRegisterRejectsUnknownRoles(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	req := registerRequest()
	req.Role = "admin"

	_, err := svc.Register(req)
	if !util.IsValidationError(err) {
		t.Fatalf("Register() error = %v, want a validation error", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	if _, err := svc.Register(registerRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := svc.Register(registerRequest())
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("second Register() error = %v, want ErrEmailRegistered", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Password == "correct-horse" {
		t.Error("password stored in plain text")
	}
}

func TestLoginIssuesClaimsForTheUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login("ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Role != model.Teacher {
		t.Errorf("claims.Role = %q, want teacher", claims.Role)
	}
	if repo.lastLogins[user.ID] != 1 {
		t.Errorf("last login recorded %d times, want 1", repo.lastLogins[user.ID])
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(registerRequest()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Login("ada@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("Login() with wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("nobody@example.com", "correct-horse"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("Login() for unknown email error = %v, want ErrInvalidCredentials", err)
	}

	repo.byEmail["ada@example.com"].Disabled = true
	if _, err := svc.Login("ada@example.com", "correct-horse"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("Login() for disabled account error = %v, want ErrInvalidCredentials", err)
	}
}
