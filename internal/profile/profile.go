package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for the HTTP server
	Addr string
	// Port is the binding port for the HTTP server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where contentmaker stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string

	// Telegram configuration
	TelegramToken  string // CONTENTMAKER_TELEGRAM_TOKEN
	TelegramAPIURL string // CONTENTMAKER_TELEGRAM_API_URL (default: https://api.telegram.org)

	// AI configuration
	AIAPIKey  string        // CONTENTMAKER_AI_API_KEY
	AIBaseURL string        // CONTENTMAKER_AI_BASE_URL (default: https://openrouter.ai/api/v1)
	AIModel   string        // CONTENTMAKER_AI_MODEL (default: deepseek/deepseek-chat)
	AITimeout time.Duration // CONTENTMAKER_AI_TIMEOUT (default: 60s)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from CONTENTMAKER_* environment variables.
// Values already set on the profile act as defaults.
func (p *Profile) FromEnv() {
	p.TelegramToken = getEnvOrDefault("CONTENTMAKER_TELEGRAM_TOKEN", p.TelegramToken)
	p.TelegramAPIURL = getEnvOrDefault("CONTENTMAKER_TELEGRAM_API_URL", "https://api.telegram.org")

	p.AIAPIKey = getEnvOrDefault("CONTENTMAKER_AI_API_KEY", p.AIAPIKey)
	p.AIBaseURL = getEnvOrDefault("CONTENTMAKER_AI_BASE_URL", "https://openrouter.ai/api/v1")
	p.AIModel = getEnvOrDefault("CONTENTMAKER_AI_MODEL", "deepseek/deepseek-chat")

	if v := os.Getenv("CONTENTMAKER_AI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			p.AITimeout = d
		}
	}
	if p.AITimeout == 0 {
		p.AITimeout = 60 * time.Second
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported database driver: %s (only 'sqlite' and 'postgres' are supported)", p.Driver)
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("contentmaker_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.TelegramToken == "" {
		return errors.New("telegram bot token is required")
	}

	return nil
}
