package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Invoice    InvoiceConfig    `validate:"required"`
	CORS       CORSConfig       `mapstructure:"cors"`
	S3         S3Config         `mapstructure:"s3"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required,oneof=local api aws_lambda_api"`
}

type ServerConfig struct {
	Address string `validate:"required"`
	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the client IP is always the peer address.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,cidr|ip"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host" validate:"required"`
	Port                   int    `mapstructure:"port" validate:"required"`
	User                   string `mapstructure:"user" validate:"required"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode" validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
	// ConnectTimeout bounds the start-up retries against the database.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type AuthConfig struct {
	Secret            string               `mapstructure:"secret" validate:"required,min=16"`
	Issuer            string               `mapstructure:"issuer" validate:"required"`
	TokenTTL          time.Duration        `mapstructure:"token_ttl" validate:"required"`
	AdminEmail        string               `mapstructure:"admin_email" validate:"required,email"`
	AdminPassword     string               `mapstructure:"admin_password" validate:"required_without=AdminPasswordHash"`
	AdminPasswordHash string               `mapstructure:"admin_password_hash"`
	AdminSubjectID    string               `mapstructure:"admin_subject_id" validate:"required"`
	LoginRateLimit    LoginRateLimitConfig `mapstructure:"login_rate_limit"`
}

type LoginRateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"required_if=Enabled true"`
	Burst             int  `mapstructure:"burst" validate:"required_if=Enabled true"`
}

type InvoiceConfig struct {
	Prefix                 string `mapstructure:"prefix" validate:"required,excludes=/"`
	Timezone               string `mapstructure:"timezone" validate:"required"`
	ResetEachFinancialYear bool   `mapstructure:"reset_each_financial_year"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type S3Config struct {
	Enabled               bool          `mapstructure:"enabled"`
	Region                string        `mapstructure:"region" validate:"required_if=Enabled true"`
	Bucket                string        `mapstructure:"bucket" validate:"required_if=Enabled true"`
	KeyPrefix             string        `mapstructure:"key_prefix"`
	PublicBaseURL         string        `mapstructure:"public_base_url"`
	PresignExpiryDuration time.Duration `mapstructure:"presign_expiry_duration"`
	// Endpoint overrides the S3 endpoint for S3 compatible stores.
	Endpoint string `mapstructure:"endpoint"`
}

type StorageConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/skyup")

	v.SetEnvPrefix("SKYUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		fmt.Printf("No config file found, using defaults and environment: %v\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override values that are
// absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("logging.level", string(types.LogLevelInfo))

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "skyup")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "skyup")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 60)
	v.SetDefault("postgres.auto_migrate", true)
	v.SetDefault("postgres.connect_timeout", "30s")

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "skyup-api")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.admin_email", "")
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("auth.admin_subject_id", "admin")
	v.SetDefault("auth.login_rate_limit.enabled", true)
	v.SetDefault("auth.login_rate_limit.requests_per_minute", 10)
	v.SetDefault("auth.login_rate_limit.burst", 5)

	v.SetDefault("invoice.prefix", "SDS")
	v.SetDefault("invoice.timezone", "Asia/Kolkata")
	v.SetDefault("invoice.reset_each_financial_year", false)

	v.SetDefault("cors.allowed_origins", []string{"https://skyup-digital.vercel.app"})

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.key_prefix", "skyup/resumes")
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.presign_expiry_duration", "24h")
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("storage.max_upload_bytes", 10<<20)

	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Invoice.Timezone); err != nil {
		return fmt.Errorf("invalid invoice timezone %q: %w", c.Invoice.Timezone, err)
	}
	return nil
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

// InvoiceLocation resolves the business time zone used for financial years.
func (c InvoiceConfig) InvoiceLocation() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
