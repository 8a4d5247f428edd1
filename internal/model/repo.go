package model

import (
	"academy/internal/entity"
	"context"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 咨询线索
	CreateEnquiry(ctx context.Context, enquiry *entity.DbEnquiry) error
	ListEnquiries(ctx context.Context, limit int) ([]entity.DbEnquiry, error)
	CountEnquiries(ctx context.Context) (int64, error)
	// DeleteEnquiries removes every listed id in one transaction and reports rows actually removed.
	DeleteEnquiries(ctx context.Context, ids []uint) (int64, error)

	// 管理员
	CreateAdminUser(ctx context.Context, user *entity.DbAdminUser) error
	GetAdminUserByEmail(ctx context.Context, email string) (*entity.DbAdminUser, error)
	GetAdminUserByID(ctx context.Context, id string) (*entity.DbAdminUser, error)
	ListAdminUsers(ctx context.Context) ([]entity.DbAdminUser, error)
	DeleteAdminUser(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}
