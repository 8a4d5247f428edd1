package sql

import (
	"academy/internal/entity"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var errNotInitialised = fmt.Errorf("repository not initialised")

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Ping checks the underlying connection.
func (r *GormRepository) Ping(ctx context.Context) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (r *GormRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps driver errors onto the entity sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", entity.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", entity.ErrDuplicatedEmail, err)
	default:
		return err
	}
}
