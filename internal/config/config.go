package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	AuthModeDatabase = "database"
	AuthModeEnv      = "env"

	// DefaultSessionSecret is only acceptable outside release mode.
	DefaultSessionSecret = "dev-secret-change-me"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// 反向代理地址（IP 或 CIDR），为空时忽略 X-Forwarded-For
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"academy"`
	DBPath     string `env:"DBPath" envDefault:"datas/academy.db"`
	DBPort     string `env:"DBPort" envDefault:"5432"`

	// 根管理员，来自部署配置
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AuthMode      string `env:"AUTH_MODE" envDefault:"database"`

	SessionSecret     string        `env:"SESSION_SECRET" envDefault:"dev-secret-change-me"`
	SessionIssuer     string        `env:"SESSION_ISSUER" envDefault:"academy"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"academy_session"`
	SessionSecure     bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	TurnstileSecretKey string        `env:"TURNSTILE_SECRET_KEY"`
	TurnstileVerifyURL string        `env:"TURNSTILE_VERIFY_URL" envDefault:"https://challenges.cloudflare.com/turnstile/v0/siteverify"`
	TurnstileTimeout   time.Duration `env:"TURNSTILE_TIMEOUT" envDefault:"5s"`

	EnquiryRatePerMinute float64 `env:"ENQUIRY_RATE_PER_MINUTE" envDefault:"5"`
	EnquiryRateBurst     int     `env:"ENQUIRY_RATE_BURST" envDefault:"3"`

	ContentfulSpaceID     string        `env:"CONTENTFUL_SPACE_ID"`
	ContentfulAccessToken string        `env:"CONTENTFUL_ACCESS_TOKEN"`
	ContentfulEnvironment string        `env:"CONTENTFUL_ENVIRONMENT" envDefault:"master"`
	ContentfulHost        string        `env:"CONTENTFUL_HOST" envDefault:"https://cdn.contentful.com"`
	ContentCacheTTL       time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m"`
	ContentRefreshSpec    string        `env:"CONTENT_REFRESH_SPEC" envDefault:"@every 10m"`
	ContentLogLevel       string        `env:"CONTENT_LOG_LEVEL" envDefault:"info"`

	CacheType   string        `env:"CACHE_TYPE" envDefault:"memory"`
	CacheSize   int           `env:"CACHE_SIZE" envDefault:"1024"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	RedisAddr   string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string        `env:"REDIS_PASSWORD"`
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix string        `env:"REDIS_PREFIX" envDefault:"academy:"`

	StorageType     string `env:"STORAGE_TYPE" envDefault:"local"`
	StorageLocalDir string `env:"STORAGE_LOCAL_DIR" envDefault:"datas/exports"`

	// S3 兼容存储配置
	StorageS3Region          string `env:"STORAGE_S3_REGION"`
	StorageS3Bucket          string `env:"STORAGE_S3_BUCKET"`
	StorageS3Prefix          string `env:"STORAGE_S3_PREFIX"`
	StorageS3Endpoint        string `env:"STORAGE_S3_ENDPOINT"`
	StorageS3AccessKeyID     string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	StorageS3SecretAccessKey string `env:"STORAGE_S3_SECRET_ACCESS_KEY"`
	StorageS3SessionToken    string `env:"STORAGE_S3_SESSION_TOKEN"`
	StorageS3ForcePathStyle  bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`

	// 阿里云 OSS 存储配置
	StorageOSSEndpoint        string `env:"STORAGE_OSS_ENDPOINT"`
	StorageOSSBucket          string `env:"STORAGE_OSS_BUCKET"`
	StorageOSSPrefix          string `env:"STORAGE_OSS_PREFIX"`
	StorageOSSAccessKeyID     string `env:"STORAGE_OSS_ACCESS_KEY_ID"`
	StorageOSSAccessKeySecret string `env:"STORAGE_OSS_ACCESS_KEY_SECRET"`

	// 腾讯云 COS 存储配置
	StorageCOSBucketURL string `env:"STORAGE_COS_BUCKET_URL"`
	StorageCOSPrefix    string `env:"STORAGE_COS_PREFIX"`
	StorageCOSSecretID  string `env:"STORAGE_COS_SECRET_ID"`
	StorageCOSSecretKey string `env:"STORAGE_COS_SECRET_KEY"`

	// Cloudflare R2 存储配置
	StorageR2AccountID       string `env:"STORAGE_R2_ACCOUNT_ID"`
	StorageR2Endpoint        string `env:"STORAGE_R2_ENDPOINT"`
	StorageR2Region          string `env:"STORAGE_R2_REGION" envDefault:"auto"`
	StorageR2Bucket          string `env:"STORAGE_R2_BUCKET"`
	StorageR2Prefix          string `env:"STORAGE_R2_PREFIX"`
	StorageR2AccessKeyID     string `env:"STORAGE_R2_ACCESS_KEY_ID"`
	StorageR2SecretAccessKey string `env:"STORAGE_R2_SECRET_ACCESS_KEY"`
}

// dotenvFiles 按顺序加载，已存在的环境变量不会被覆盖
var dotenvFiles = []string{".env.local", ".env"}

func ParseConfig() (Config, error) {
	for _, file := range dotenvFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			logrus.WithError(err).WithField("file", file).Warn("failed to load dotenv file")
		}
	}

	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	if err := Conf.Validate(); err != nil {
		return Config{}, err
	}
	return Conf, nil
}

// Validate checks combinations env tags cannot express.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.AuthMode)) {
	case AuthModeDatabase:
	case AuthModeEnv:
		if strings.TrimSpace(c.AdminEmail) == "" || c.AdminPassword == "" {
			return errors.New("AUTH_MODE=env requires ADMIN_EMAIL and ADMIN_PASSWORD")
		}
	default:
		return errors.New("AUTH_MODE must be one of database, env")
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("SESSION_SECRET must not be empty")
	}
	if c.SessionSecret == DefaultSessionSecret {
		if gin.Mode() == gin.ReleaseMode {
			return errors.New("SESSION_SECRET is still the development default, refusing to start in release mode")
		}
		logrus.Warn("SESSION_SECRET is the development default, sessions can be forged")
	}
	return nil
}
