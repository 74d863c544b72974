package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port      int    `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	APIPrefix string `yaml:"api_prefix"`
	// BaseURL is the public origin used when building links in emails.
	BaseURL string `yaml:"base_url"`
	// ExposeOTP returns one-time codes in API responses instead of relying on
	// SMS delivery. Development only.
	ExposeOTP bool `yaml:"expose_otp"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret        string `yaml:"secret"`
	Issuer        string `yaml:"issuer"`
	AccessMinutes int    `yaml:"access_minutes"`
}

type OTPConfig struct {
	Length          int    `yaml:"length"`
	VerificationTTL string `yaml:"verification_ttl"`
	ResetTTL        string `yaml:"reset_ttl"`
	MaxAttempts     int    `yaml:"max_attempts"`
	ResendWindow    string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	// MaxPhotoMB bounds profile photo uploads.
	MaxPhotoMB int `yaml:"max_photo_mb"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Storage  StorageConfig  `yaml:"storage"`
	CORS     CORSConfig     `yaml:"cors"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

// Config is the resolved runtime configuration.
type Config struct {
	Port      string
	GinMode   string
	APIPrefix string
	BaseURL   string
	ExposeOTP bool

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	AccessTTL time.Duration

	OTPLength       int
	VerificationTTL time.Duration
	ResetTTL        time.Duration
	OTPMaxAttempts  int
	OTPResendWindow time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	MaxPhotoMB  int

	CORSAllowOrigins []string

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// credentials that should not live in the file.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	verTTL, err := time.ParseDuration(file.OTP.VerificationTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification OTP TTL: %w", err)
	}
	resetTTL, err := time.ParseDuration(file.OTP.ResetTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset OTP TTL: %w", err)
	}
	resendWnd, err := time.ParseDuration(file.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}
	if file.JWT.AccessMinutes <= 0 {
		return nil, fmt.Errorf("jwt access_minutes must be positive, got %d", file.JWT.AccessMinutes)
	}

	cfg := &Config{
		Port:      fmt.Sprintf("%d", file.App.Port),
		GinMode:   file.App.GinMode,
		APIPrefix: file.App.APIPrefix,
		BaseURL:   env("BASE_URL", file.App.BaseURL),
		ExposeOTP: file.App.ExposeOTP,

		DSN: env("DATABASE_DSN", file.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       envInt("REDIS_DB", file.Redis.DB),

		JWTSecret: env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer: file.JWT.Issuer,
		AccessTTL: time.Duration(file.JWT.AccessMinutes) * time.Minute,

		OTPLength:       file.OTP.Length,
		VerificationTTL: verTTL,
		ResetTTL:        resetTTL,
		OTPMaxAttempts:  file.OTP.MaxAttempts,
		OTPResendWindow: resendWnd,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioFrom:  env("TWILIO_FROM_NUMBER", file.Twilio.FromNumber),

		SMTPHost:     env("SMTP_HOST", file.SMTP.Host),
		SMTPPort:     envInt("SMTP_PORT", file.SMTP.Port),
		SMTPUser:     env("SMTP_USER", file.SMTP.User),
		SMTPPassword: env("SMTP_PASSWORD", file.SMTP.Password),
		MailFrom:     env("MAIL_FROM", file.SMTP.From),

		S3Endpoint:  env("S3_ENDPOINT", file.Storage.Endpoint),
		S3Region:    env("S3_REGION", file.Storage.Region),
		S3Bucket:    env("S3_BUCKET", file.Storage.Bucket),
		S3AccessKey: env("S3_ACCESS_KEY", file.Storage.AccessKey),
		S3SecretKey: env("S3_SECRET_KEY", file.Storage.SecretKey),
		MaxPhotoMB:  file.Storage.MaxPhotoMB,

		CORSAllowOrigins: file.CORS.AllowOrigins,

		CasbinModelPath: file.Casbin.ModelPath,
	}

	if cfg.CasbinModelPath == "" {
		cfg.CasbinModelPath = "config/model.conf"
	}

	if cfg.OTPLength == 0 {
		cfg.OTPLength = 6
	}
	if cfg.MaxPhotoMB == 0 {
		cfg.MaxPhotoMB = 5
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &file, nil
}
