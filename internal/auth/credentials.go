package auth

import (
	"academy/internal/config"
	"academy/internal/entity"
	"academy/internal/validation"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// envSessionID identifies the configured administrator in env mode.
	envSessionID   = "root"
	envSessionName = "Super Admin"
)

// ErrInvalidCredentials is the only failure callers see for a bad email or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

type credentialsInput struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=6"`
}

// UserLookup is the slice of the repository the authenticator needs.
type UserLookup interface {
	GetAdminUserByEmail(ctx context.Context, email string) (*entity.DbAdminUser, error)
}

// Authenticator checks an email/password pair against env credentials or stored hashes.
type Authenticator struct {
	mode          string
	adminEmail    string
	adminPassword string
	users         UserLookup
}

func NewAuthenticator(mode, adminEmail, adminPassword string, users UserLookup) (*Authenticator, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case config.AuthModeEnv:
		if strings.TrimSpace(adminEmail) == "" || adminPassword == "" {
			return nil, errors.New("env mode requires admin email and password")
		}
	case config.AuthModeDatabase:
		if users == nil {
			return nil, errors.New("database mode requires a user store")
		}
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", mode)
	}
	return &Authenticator{
		mode:          mode,
		adminEmail:    strings.TrimSpace(adminEmail),
		adminPassword: adminPassword,
		users:         users,
	}, nil
}

// Authenticate returns the identity to stamp onto a new session.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (entity.SessionUser, error) {
	email = strings.TrimSpace(email)
	if fields, err := validation.Struct(credentialsInput{Email: email, Password: password}, nil); err != nil || len(fields) > 0 {
		return entity.SessionUser{}, ErrInvalidCredentials
	}

	if a.mode == config.AuthModeEnv {
		emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.adminEmail)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.adminPassword)) == 1
		if !emailOK || !passOK {
			logrus.WithField("email", email).Warn("sign-in rejected")
			return entity.SessionUser{}, ErrInvalidCredentials
		}
		return entity.SessionUser{ID: envSessionID, Name: envSessionName, Email: a.adminEmail, Role: entity.RoleAdmin}, nil
	}

	user, err := a.users.GetAdminUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			logrus.WithField("email", email).Warn("sign-in rejected: unknown email")
			return entity.SessionUser{}, ErrInvalidCredentials
		}
		return entity.SessionUser{}, fmt.Errorf("lookup admin user: %w", err)
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		logrus.WithField("email", email).Warn("sign-in rejected: password mismatch")
		return entity.SessionUser{}, ErrInvalidCredentials
	}

	role := user.Role
	if role == "" {
		role = entity.RoleAdmin
	}
	return entity.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: role}, nil
}
