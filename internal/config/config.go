package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Every TTL and secret lives here so services can be constructed for tests
// without touching the process environment.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	RedisURL string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	OTPCodeLength   int
	OTPCodeTTL      time.Duration
	OTPResendWindow time.Duration
	OTPEchoCode     bool // echo the plaintext code in the issuance response (dev only)

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	DefaultLanguage string
	AllowedOrigins  []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users           string
	Roles           string
	Permissions     string
	Pages           string
	Sections        string
	Contents        string
	Languages       string
	Folders         string
	Files           string
	UserPreferences string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:           getEnv("DYNAMO_TABLE_USERS", "users"),
			Roles:           getEnv("DYNAMO_TABLE_ROLES", "roles"),
			Permissions:     getEnv("DYNAMO_TABLE_PERMISSIONS", "permissions"),
			Pages:           getEnv("DYNAMO_TABLE_PAGES", "pages"),
			Sections:        getEnv("DYNAMO_TABLE_SECTIONS", "sections"),
			Contents:        getEnv("DYNAMO_TABLE_CONTENTS", "contents"),
			Languages:       getEnv("DYNAMO_TABLE_LANGUAGES", "languages"),
			Folders:         getEnv("DYNAMO_TABLE_FOLDERS", "folders"),
			Files:           getEnv("DYNAMO_TABLE_FILES", "files"),
			UserPreferences: getEnv("DYNAMO_TABLE_USER_PREFERENCES", "user_preferences"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "cms-uploads"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
		AccessTokenTTL:     getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:    getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		OTPCodeLength:   getEnvInt("OTP_CODE_LENGTH", 6),
		OTPCodeTTL:      getEnvDuration("OTP_CODE_TTL", 300*time.Second),
		OTPResendWindow: getEnvDuration("OTP_RESEND_WINDOW", 60*time.Second),
		OTPEchoCode:     getEnvBool("OTP_ECHO_CODE", false),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URI", ""),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "fa"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
