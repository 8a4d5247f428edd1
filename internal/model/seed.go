package model

import (
	"academy/internal/entity"
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

const rootAdminName = "Super Admin"

// PasswordHasher hashes a plaintext password for storage.
type PasswordHasher func(plain string) (string, error)

// SeedRootAdmin makes sure the configured root administrator exists in the users table.
// Existing rows are left untouched.
func SeedRootAdmin(ctx context.Context, repo Repository, email, password string, hash PasswordHasher) (bool, error) {
	email = strings.TrimSpace(email)
	if repo == nil || email == "" || password == "" {
		return false, nil
	}

	existing, err := repo.GetAdminUserByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return false, nil
	case err != nil && !errors.Is(err, entity.ErrNotFound):
		return false, err
	}

	hashed, err := hash(password)
	if err != nil {
		return false, err
	}
	user := &entity.DbAdminUser{
		Name:         rootAdminName,
		Email:        email,
		PasswordHash: hashed,
		Role:         entity.RoleAdmin,
	}
	if err := repo.CreateAdminUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrDuplicatedEmail) {
			return false, nil
		}
		return false, err
	}
	logrus.WithField("email", email).Info("root admin seeded")
	return true, nil
}
