package auth

import (
	"academy/internal/config"
	"academy/internal/entity"
	"context"
	"errors"
	"testing"
)

type fakeUsers struct {
	users map[string]*entity.DbAdminUser
	err   error
}

func (f *fakeUsers) GetAdminUserByEmail(_ context.Context, email string) (*entity.DbAdminUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

func TestAuthenticateDatabaseMode(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &fakeUsers{users: map[string]*entity.DbAdminUser{
		"ops@example.com": {ID: "u-1", Name: "Ops", Email: "ops@example.com", PasswordHash: hash, Role: entity.RoleAdmin},
	}}
	authn, err := NewAuthenticator(config.AuthModeDatabase, "", "", users)
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "ops@example.com", password: "correct-horse"},
		{name: "wrong password", email: "ops@example.com", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "who@example.com", password: "correct-horse", wantErr: ErrInvalidCredentials},
		{name: "empty", wantErr: ErrInvalidCredentials},
		{name: "malformed email", email: "ops", password: "correct-horse", wantErr: ErrInvalidCredentials},
		{name: "short password", email: "ops@example.com", password: "abc", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := authn.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID != "u-1" || user.Role != entity.RoleAdmin {
				t.Fatalf("unexpected user %+v", user)
			}
		})
	}
}

func TestAuthenticateStoreFailureIsNotInvalidCredentials(t *testing.T) {
	authn, _ := NewAuthenticator(config.AuthModeDatabase, "", "", &fakeUsers{err: errors.New("db down")})
	_, err := authn.Authenticate(context.Background(), "ops@example.com", "password1")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthenticateEnvMode(t *testing.T) {
	authn, err := NewAuthenticator(config.AuthModeEnv, "root@example.com", "rootpw", nil)
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	user, err := authn.Authenticate(context.Background(), "root@example.com", "rootpw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != envSessionID || user.Role != entity.RoleAdmin {
		t.Fatalf("unexpected user %+v", user)
	}
	if _, err := authn.Authenticate(context.Background(), "root@example.com", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestNewAuthenticatorValidatesMode(t *testing.T) {
	if _, err := NewAuthenticator("ldap", "", "", nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if _, err := NewAuthenticator(config.AuthModeEnv, "", "", nil); err == nil {
		t.Fatal("expected error for env mode without credentials")
	}
	if _, err := NewAuthenticator(config.AuthModeDatabase, "", "", nil); err == nil {
		t.Fatal("expected error for database mode without store")
	}
}
