package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendNone      = "none"
	BackendAPI       = "api"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

type HTTPConfig struct {
	Host string
	Port int
}

type SessionConfig struct {
	Secret string
}

type StoreConfig struct {
	Backend string

	APIURL     string
	APITimeout time.Duration

	SQLitePath string
	UploadsDir string

	FirestoreProject string
	GCSBucket        string
	// CredentialsFile is a service account key; empty uses the default
	// credentials of the environment.
	CredentialsFile string
}

type BillsConfig struct {
	UploadMaxBytes int64
	DraftTTL       time.Duration
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	Session     SessionConfig
	Store       StoreConfig
	Bills       BillsConfig
}

func (c *Config) Development() bool {
	return c.Environment == "development"
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("HTTP_HOST", "localhost")
	v.SetDefault("HTTP_PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", BackendNone)
	v.SetDefault("API_URL", "http://localhost:5678")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("SQLITE_PATH", "billed.db")
	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("DRAFT_TTL", "1h")

	cfg := &Config{
		Environment: strings.ToLower(v.GetString("APP_ENV")),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
		},
		Store: StoreConfig{
			Backend:          strings.ToLower(v.GetString("STORE_BACKEND")),
			APIURL:           v.GetString("API_URL"),
			APITimeout:       v.GetDuration("API_TIMEOUT"),
			SQLitePath:       v.GetString("SQLITE_PATH"),
			UploadsDir:       v.GetString("UPLOADS_DIR"),
			FirestoreProject: v.GetString("FIRESTORE_PROJECT"),
			GCSBucket:        v.GetString("GCS_BUCKET"),
			CredentialsFile:  v.GetString("GCP_CREDENTIALS_FILE"),
		},
		Bills: BillsConfig{
			UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
			DraftTTL:       v.GetDuration("DRAFT_TTL"),
		},
	}

	// A fixed key keeps development sessions alive across restarts.
	if cfg.Session.Secret == "" && cfg.Development() {
		cfg.Session.Secret = "billed-development-secret"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT is out of range: %d", cfg.HTTP.Port)
	}
	if cfg.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.Bills.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if cfg.Bills.DraftTTL <= 0 {
		return fmt.Errorf("DRAFT_TTL must be positive")
	}

	switch cfg.Store.Backend {
	case BackendNone:
	case BackendAPI:
		if cfg.Store.APIURL == "" {
			return fmt.Errorf("API_URL is required for the %q backend", BackendAPI)
		}
	case BackendSQLite:
		if cfg.Store.SQLitePath == "" || cfg.Store.UploadsDir == "" {
			return fmt.Errorf("SQLITE_PATH and UPLOADS_DIR are required for the %q backend", BackendSQLite)
		}
	case BackendFirestore:
		if cfg.Store.FirestoreProject == "" || cfg.Store.GCSBucket == "" {
			return fmt.Errorf("FIRESTORE_PROJECT and GCS_BUCKET are required for the %q backend", BackendFirestore)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND: %q", cfg.Store.Backend)
	}

	return nil
}
