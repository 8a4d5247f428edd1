package sql

import (
	"academy/internal/entity"
	"context"
	"fmt"
	"strings"
)

// CreateAdminUser persists a new administrator. A taken email yields entity.ErrDuplicatedEmail.
func (r *GormRepository) CreateAdminUser(ctx context.Context, user *entity.DbAdminUser) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// GetAdminUserByEmail loads an administrator by exact email.
func (r *GormRepository) GetAdminUserByEmail(ctx context.Context, email string) (*entity.DbAdminUser, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var user entity.DbAdminUser
	if err := r.db.WithContext(ctx).Where("email = ?", trimmed).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetAdminUserByID loads an administrator by ID.
func (r *GormRepository) GetAdminUserByID(ctx context.Context, id string) (*entity.DbAdminUser, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbAdminUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ListAdminUsers returns every administrator, newest first.
func (r *GormRepository) ListAdminUsers(ctx context.Context) ([]entity.DbAdminUser, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	var users []entity.DbAdminUser
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteAdminUser removes an administrator by ID.
func (r *GormRepository) DeleteAdminUser(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid user id")
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DbAdminUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
