package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventful-api/eventful-backend/config"
	"github.com/eventful-api/eventful-backend/utils"
)

type fakeAuthRepo struct {
	users      map[string]*User      // keyed by email
	organizers map[string]*Organizer // keyed by email
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users:      make(map[string]*User),
		organizers: make(map[string]*Organizer),
	}
}

func (f *fakeAuthRepo) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeAuthRepo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeAuthRepo) FindUserByID(ctx context.Context, id string) (*User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) CreateOrganizer(ctx context.Context, o *Organizer) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	f.organizers[o.Email] = o
	return nil
}

func (f *fakeAuthRepo) FindOrganizerByEmail(ctx context.Context, email string) (*Organizer, error) {
	o, ok := f.organizers[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (f *fakeAuthRepo) FindOrganizerByID(ctx context.Context, id string) (*Organizer, error) {
	for _, o := range f.organizers {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newAuthService(repo Repository) Service {
	return NewService(repo, &config.Config{JWTSecret: "test-secret", JWTTTLHours: 1})
}

func TestSignupAndLoginUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthRepo()
	svc := newAuthService(repo)

	req := SignupUserRequest{Name: "Test User", Email: "user@example.com", Password: "s3cret-pass"}
	if err := svc.SignupUser(ctx, req); err != nil {
		t.Fatalf("SignupUser: %v", err)
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := svc.SignupUser(ctx, req)
		var apiErr *utils.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("duplicate signup error = %v, want 422", err)
		}
	})

	t.Run("login issues a parseable token", func(t *testing.T) {
		token, err := svc.LoginUser(ctx, LoginRequest{Email: req.Email, Password: req.Password})
		if err != nil {
			t.Fatalf("LoginUser: %v", err)
		}

		caller, err := svc.ParseToken(token)
		if err != nil {
			t.Fatalf("ParseToken: %v", err)
		}
		if caller.Email != req.Email || caller.Role != RoleUser {
			t.Errorf("caller = %+v, want email=%s role=%s", caller, req.Email, RoleUser)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.LoginUser(ctx, LoginRequest{Email: req.Email, Password: "wrong"})
		var apiErr *utils.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Msg != "Wrong credentials" {
			t.Fatalf("wrong password error = %v, want 422 Wrong credentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.LoginUser(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		var apiErr *utils.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("unknown email error = %v, want 422", err)
		}
	})
}

func TestLoginOrganizerRole(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthRepo()
	svc := newAuthService(repo)

	req := SignupOrganizerRequest{OrganizationName: "Acme Events", Email: "org@example.com", Password: "s3cret-pass"}
	if err := svc.SignupOrganizer(ctx, req); err != nil {
		t.Fatalf("SignupOrganizer: %v", err)
	}

	token, err := svc.LoginOrganizer(ctx, LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("LoginOrganizer: %v", err)
	}

	caller, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if caller.Role != RoleOrganizer {
		t.Errorf("role = %q, want %q", caller.Role, RoleOrganizer)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(newFakeAuthRepo())

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := svc.ParseToken(token); err == nil {
			t.Errorf("ParseToken(%q) accepted an invalid token", token)
		}
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthRepo()
	svc := newAuthService(repo)

	req := SignupUserRequest{Name: "Test User", Email: "user@example.com", Password: "s3cret-pass"}
	if err := svc.SignupUser(ctx, req); err != nil {
		t.Fatalf("SignupUser: %v", err)
	}
	token, err := svc.LoginUser(ctx, LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	other := NewService(repo, &config.Config{JWTSecret: "different-secret", JWTTTLHours: 1})
	if _, err := other.ParseToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}
