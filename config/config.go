package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client settings. It is stored as JSON in the user config
// directory and can be overridden per field from the environment.
type Config struct {
	// APIBaseURL is the portfolio API the client talks to.
	APIBaseURL string `json:"api_base_url"`
	// TimeoutSeconds bounds each request. 0 disables the timeout: a hung
	// request keeps its loading indicator until the server answers.
	TimeoutSeconds int `json:"timeout_seconds"`
	// UserID is the placeholder identity sent with sentiment and analysis
	// requests.
	UserID string `json:"user_id"`

	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Accent is the hex color used for highlighted UI elements.
	Accent string `json:"accent"`
}

func DefaultConfig() *Config {
	root := defaultRoot()

	cfg := &Config{
		APIBaseURL:     "http://localhost:5000",
		TimeoutSeconds: 0,
		UserID:         "demo-user",
		LogLevel:       "info",
		LogFile:        filepath.Join(root, "foliodesk.log"),
		Accent:         "#7C3AED",
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Override with environment variables if they exist
	cfg.loadFromEnv()

	return cfg
}

// DefaultConfigWithRoot returns the defaults with file paths rooted at dir.
func DefaultConfigWithRoot(dir string) *Config {
	cfg := DefaultConfig()
	if dir != "" {
		cfg.LogFile = filepath.Join(dir, "foliodesk.log")
	}
	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("FOLIODESK_API_URL"); val != "" {
		c.APIBaseURL = val
	}
	if val := os.Getenv("FOLIODESK_USER_ID"); val != "" {
		c.UserID = val
	}
	if val := os.Getenv("FOLIODESK_TIMEOUT_SECONDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.TimeoutSeconds = v
		}
	}
	if val := os.Getenv("FOLIODESK_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("FOLIODESK_LOG_FILE"); val != "" {
		c.LogFile = val
	}
	if val := os.Getenv("FOLIODESK_ACCENT"); val != "" {
		c.Accent = val
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.APIBaseURL)
	if base == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("api_base_url %q must start with http:// or https://", base)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// Timeout returns the request timeout, 0 meaning none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{defaultRoot(), filepath.Dir(c.LogFile)}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}

func defaultRoot() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, _ = os.Getwd()
	}
	return filepath.Join(dir, "foliodesk")
}
