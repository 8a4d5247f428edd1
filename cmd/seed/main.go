package main

import (
	"academy/internal/auth"
	"academy/internal/config"
	"academy/internal/model"
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// 仅执行数据库迁移并写入根管理员，便于部署前单独运行
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		os.Exit(1)
	}

	// InitRepository 会自动迁移 users / enquiries 表
	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		os.Exit(1)
	}
	defer repo.Close()
	logrus.WithField("db_type", cfg.DBType).Info("schema migrated")

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logrus.Error("ADMIN_EMAIL and ADMIN_PASSWORD must be set to seed the root admin")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := model.SeedRootAdmin(ctx, repo, cfg.AdminEmail, cfg.AdminPassword, auth.HashPassword)
	if err != nil {
		logrus.WithError(err).Error("failed to seed root admin")
		os.Exit(1)
	}
	if !created {
		logrus.WithField("email", cfg.AdminEmail).Info("root admin already exists")
	}
}
