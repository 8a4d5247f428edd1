package model

import (
	"academy/internal/config"
	"academy/internal/entity"
	"academy/internal/model/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DBTypeMySQL    = "mysql"
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
)

// RepositoryFactory 根据数据库类型创建对应的仓库实现
type RepositoryFactory struct{}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

// InitRepository 初始化仓库的辅助函数
func InitRepository(cfg *config.Config) (Repository, error) {
	if cfg == nil || cfg.DBType == "" {
		return nil, fmt.Errorf("database type is not configured")
	}
	return NewRepositoryFactory().CreateRepository(cfg)
}

// CreateRepository 根据配置创建对应的仓库实现
func (f *RepositoryFactory) CreateRepository(cfg *config.Config) (Repository, error) {
	dialector, err := f.dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := OpenGormDB(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBType, err)
	}

	// 自动迁移数据库表结构
	if err := MigrateSchema(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return sql.NewGormRepository(db), nil
}

func (f *RepositoryFactory) dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case DBTypeMySQL:
		dsn := cfg.DSNURL
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.DBUser, cfg.DBPassword, cfg.DBAddr, cfg.DBPort, cfg.DBName)
		}
		return mysql.Open(dsn), nil
	case DBTypePostgres:
		dsn := cfg.DSNURL
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				cfg.DBAddr, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		}
		return postgres.Open(dsn), nil
	case DBTypeSQLite:
		filePath := cfg.DBPath
		if filePath == "" {
			filePath = "datas/academy.db"
		}
		// SQLite 会自动创建 .db 文件，但目录必须已存在
		if dir := filepath.Dir(filePath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
			}
		}
		return sqlite.Open(filePath), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

// OpenGormDB opens a connection with the shared logger and pool settings.
func OpenGormDB(dialector gorm.Dialector) (*gorm.DB, error) {
	gormLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormLogger,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// MigrateSchema 迁移数据库表结构
func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.DbAdminUser{},
		&entity.DbEnquiry{},
	)
}
