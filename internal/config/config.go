package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// URL, when set, takes precedence over the component fields.
type DatabaseConfig struct {
	URL                string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// StorageConfig holds object storage settings for the S3-compatible backend
// that receives cloud-file uploads. Leaving the credentials empty disables
// the cloud upload capability without preventing startup.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds the admin credential pair and session token settings.
// AdminPasswordBcrypt, when set, switches credential verification to a bcrypt
// comparison instead of the plain string match.
type AuthConfig struct {
	AdminUsername       string
	AdminPassword       string
	AdminPasswordBcrypt string
	JWTSecret           string
	SessionTTLHours     int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	StaticDir string
	Database  DatabaseConfig
	Storage   StorageConfig
	Auth      AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:   getEnv("APP_HOST", "localhost:8080"),
		Port:      getEnv("PORT", "8080"),
		StaticDir: getEnv("STATIC_DIR", "./web"),
		Database: DatabaseConfig{
			URL:                firstEnv("POSTGRES_URL", "DATABASE_URL"),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "exam-cracker"),
			UseSSL:    getEnvBool("STORAGE_USE_SSL", false),
		},
		Auth: AuthConfig{
			AdminUsername:       getEnv("ADMIN_USERNAME", "praveen"),
			AdminPassword:       getEnv("ADMIN_PASSWORD", "PRAVEEN@1234"),
			AdminPasswordBcrypt: getEnv("ADMIN_PASSWORD_BCRYPT", ""),
			JWTSecret:           getEnv("JWT_SECRET", ""),
			SessionTTLHours:     getEnvInt("SESSION_TTL_HOURS", 24),
		},
	}
}

// CloudUploadEnabled reports whether the cloud upload capability can be wired.
// Absence of storage credentials disables uploads without crashing the service.
func (c *AppConfig) CloudUploadEnabled() bool {
	return c.Storage.Endpoint != "" && c.Storage.AccessKey != "" && c.Storage.SecretKey != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// firstEnv returns the first non-empty value among the given keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
