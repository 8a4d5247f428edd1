package main

import (
	"academy/internal/api"
	"academy/internal/auth"
	"academy/internal/cache"
	"academy/internal/captcha"
	"academy/internal/config"
	"academy/internal/content"
	"academy/internal/model"
	"academy/internal/scheduler"
	"academy/internal/service"
	"academy/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// 设置Gin模式，GIN_MODE 未设置时按生产环境处理
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		os.Exit(1)
	}

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		os.Exit(1)
	}
	defer repo.Close()

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logrus.Error("ADMIN_EMAIL and ADMIN_PASSWORD are not set, root admin not seeded")
	} else if _, err := model.SeedRootAdmin(context.Background(), repo, cfg.AdminEmail, cfg.AdminPassword, auth.HashPassword); err != nil {
		logrus.WithError(err).Warn("failed to seed root admin")
	}

	store, err := cache.New(cache.Options{
		Type:       cfg.CacheType,
		Size:       cfg.CacheSize,
		DefaultTTL: cfg.CacheTTL,
		RedisAddr:  cfg.RedisAddr,
		RedisPass:  cfg.RedisPass,
		RedisDB:    cfg.RedisDB,
		Prefix:     cfg.RedisPrefix,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to initialise cache")
		os.Exit(1)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	sessions, err := auth.NewManager(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL, auth.NewRevocationList(store, cfg.SessionTTL))
	if err != nil {
		logrus.WithError(err).Error("failed to initialise session manager")
		os.Exit(1)
	}
	authenticator, err := auth.NewAuthenticator(cfg.AuthMode, cfg.AdminEmail, cfg.AdminPassword, repo)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise authenticator")
		os.Exit(1)
	}

	archive, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		os.Exit(1)
	}

	provider := content.NewProvider(content.Options{
		SpaceID:     cfg.ContentfulSpaceID,
		AccessToken: cfg.ContentfulAccessToken,
		Environment: cfg.ContentfulEnvironment,
		Host:        cfg.ContentfulHost,
		Timeout:     10 * time.Second,
		CacheTTL:    cfg.ContentCacheTTL,
		LogLevel:    cfg.ContentLogLevel,
	}, store)

	verifier := captcha.NewTurnstile(cfg.TurnstileSecretKey, cfg.TurnstileVerifyURL, cfg.TurnstileTimeout)
	enquiries := service.NewEnquiryService(repo, verifier, store, archive, cfg.CacheTTL)

	httpHandler, err := api.NewHTTPHandler(cfg, api.Dependencies{
		Sessions:      sessions,
		Authenticator: authenticator,
		Enquiries:     enquiries,
		Admins:        service.NewAdminService(repo, store, cfg.CacheTTL, cfg.AdminEmail),
		Dashboard:     service.NewDashboardService(enquiries, provider),
		Content:       provider,
	})
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		os.Exit(1)
	}

	jobs := scheduler.NewCronScheduler(cfg.ContentRefreshSpec, provider)
	if provider.Enabled() {
		if err := jobs.Start(); err != nil {
			logrus.WithError(err).Error("failed to start scheduler")
			os.Exit(1)
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      httpHandler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.WithField("host", serverHost).Info("服务器启动")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("服务器启动失败")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	<-jobs.Stop().Done()
}
