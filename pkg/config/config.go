package config

import (
	"fmt"
	"time"

	"github.com/hubcontatos/contacthub/pkg/notification"
	"github.com/hubcontatos/contacthub/pkg/storage"
)

// AppConfig holds the server-level settings
type AppConfig struct {
	Addr            string        `env:"APP_ADDR" env-default:":4000"`
	BaseURL         string        `env:"APP_BASE_URL" env-default:"http://localhost:4000"`
	Debug           bool          `env:"APP_DEBUG" env-default:"false"`
	Persistence     string        `env:"APP_PERSISTENCE" env-default:"postgres"`
	SessionStore    string        `env:"APP_SESSION_STORE" env-default:"redis"`
	SessionLifetime time.Duration `env:"APP_SESSION_LIFETIME" env-default:"336h"`
	SecureCookies   bool          `env:"APP_SECURE_COOKIES" env-default:"false"`
	PendingTTL      time.Duration `env:"APP_PENDING_TTL" env-default:"24h"`
	CodeExpiry      time.Duration `env:"APP_CODE_EXPIRY" env-default:"24h"`
}

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	Host     string `env:"HUB_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"HUB_PG_PORT" env-default:"5432"`
	Database string `env:"HUB_PG_DATABASE" env-default:"contacthub_db"`
	User     string `env:"HUB_PG_USER" env-default:"contacthub"`
	Password string `env:"HUB_PG_PASSWORD" env-default:"pwd"`
	Schema   string `env:"HUB_PG_SCHEMA" env-default:"public"`
}

// ToDatabaseURL converts the config to a PostgreSQL connection URL
func (d DatabaseConfig) ToDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s,public",
		d.User, d.Password, d.Host, d.Port, d.Database, d.Schema)
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

// EmailConfig holds SMTP email configuration
type EmailConfig struct {
	Host     string `env:"EMAIL_HOST" env-default:"localhost"`
	Port     uint16 `env:"EMAIL_PORT" env-default:"1025"`
	Username string `env:"EMAIL_USERNAME" env-default:""`
	Password string `env:"EMAIL_PASSWORD" env-default:""`
	From     string `env:"EMAIL_FROM" env-default:"noreply@contacthub.example.com"`
	TLS      bool   `env:"EMAIL_TLS" env-default:"false"`
}

// ToSMTPConfig converts the config to a notification.SMTPConfig
func (e EmailConfig) ToSMTPConfig() notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:     e.Host,
		Port:     int(e.Port),
		Username: e.Username,
		Password: e.Password,
		From:     e.From,
		TLS:      e.TLS,
	}
}

// SendGridConfig holds the fallback email transport configuration
type SendGridConfig struct {
	APIKey   string `env:"SENDGRID_API_KEY" env-default:""`
	FromName string `env:"SENDGRID_FROM_NAME" env-default:"ContactHub"`
	From     string `env:"SENDGRID_FROM" env-default:""`
}

// ToNotificationConfig converts the config to a notification.SendGridConfig
func (s SendGridConfig) ToNotificationConfig() notification.SendGridConfig {
	return notification.SendGridConfig{
		APIKey:   s.APIKey,
		FromName: s.FromName,
		From:     s.From,
	}
}

// StorageConfig holds contact picture storage configuration
type StorageConfig struct {
	Backend        string `env:"STORAGE_BACKEND" env-default:"minio"`
	MinioEndpoint  string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY" env-default:""`
	MinioSecretKey string `env:"MINIO_SECRET_KEY" env-default:""`
	MinioBucket    string `env:"MINIO_BUCKET" env-default:"contacthub-pictures"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
	FSBaseDir      string `env:"STORAGE_FS_DIR" env-default:"./media"`
	FSBaseURL      string `env:"STORAGE_FS_URL" env-default:"/media"`
}

// ToStorageConfig converts the config to a storage.Config
func (s StorageConfig) ToStorageConfig() storage.Config {
	return storage.Config{
		MinIO: storage.MinIOConfig{
			Endpoint:  s.MinioEndpoint,
			AccessKey: s.MinioAccessKey,
			SecretKey: s.MinioSecretKey,
			Bucket:    s.MinioBucket,
			UseSSL:    s.MinioUseSSL,
		},
		BaseDir: s.FSBaseDir,
		BaseURL: s.FSBaseURL,
	}
}

// Config aggregates every configuration section the server reads
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Email    EmailConfig
	SendGrid SendGridConfig
	Storage  StorageConfig
}
