// pkg/config/config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "bizbooks.yaml"

const (
	StorageLocal = "local"
	StorageS3    = "s3"
	StorageGCS   = "gcs"
)

type Config struct {
	ListenAddr  string        `yaml:"listen_addr"`
	DatabaseURL string        `yaml:"database_url"`
	LogLevel    string        `yaml:"log_level"`
	Locale      string        `yaml:"locale"`
	PageWidth   float64       `yaml:"page_width"`
	Storage     StorageConfig `yaml:"storage"`
}

type StorageConfig struct {
	Provider string `yaml:"provider"`
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	BaseDir  string `yaml:"base_dir"`
	// CredentialsJSON is only read by the gcs provider.
	CredentialsJSON string `yaml:"-"`
}

func Default() Config {
	return Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		Locale:     "en-US",
		PageWidth:  210,
		Storage: StorageConfig{
			Provider: StorageLocal,
			BaseDir:  "data",
		},
	}
}

// Load reads .env, then the YAML file at path, then environment overrides.
// A missing .env or YAML file is not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, err
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Locale, "LOCALE")
	setString(&cfg.Storage.Provider, "STORAGE_PROVIDER")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.Region, "AWS_REGION")
	setString(&cfg.Storage.BaseDir, "STORAGE_DIR")
	setString(&cfg.Storage.CredentialsJSON, "GCS_CREDENTIALS_JSON")
	if v := strings.TrimSpace(os.Getenv("PAGE_WIDTH")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.PageWidth = f
		}
	}
	cfg.Storage.Provider = strings.ToLower(strings.TrimSpace(cfg.Storage.Provider))
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	switch c.Storage.Provider {
	case StorageLocal:
		if c.Storage.BaseDir == "" {
			return errors.New("storage.base_dir is required for local storage")
		}
	case StorageS3, StorageGCS:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for %s storage", c.Storage.Provider)
		}
	default:
		return fmt.Errorf("unknown storage provider %q", c.Storage.Provider)
	}
	if c.PageWidth <= 0 {
		return errors.New("page_width must be positive")
	}
	return nil
}

// RequireDatabase is checked by commands that open the database.
func (c Config) RequireDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("database_url is required")
	}
	return nil
}
