package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"empty base url", func(c *Config) { c.APIBaseURL = " " }, "api_base_url"},
		{"bare host", func(c *Config) { c.APIBaseURL = "localhost:5000" }, "http://"},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, "timeout_seconds"},
		{"empty user", func(c *Config) { c.UserID = "" }, "user_id"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{
				APIBaseURL: "http://localhost:5000",
				UserID:     "demo-user",
				LogLevel:   "info",
			}
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIODESK_API_URL", "http://staging:8080")
	t.Setenv("FOLIODESK_USER_ID", "qa-user")
	t.Setenv("FOLIODESK_TIMEOUT_SECONDS", "45")
	t.Setenv("FOLIODESK_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	if cfg.APIBaseURL != "http://staging:8080" {
		t.Fatalf("base url override not applied: %s", cfg.APIBaseURL)
	}
	if cfg.UserID != "qa-user" {
		t.Fatalf("user id override not applied: %s", cfg.UserID)
	}
	if cfg.TimeoutSeconds != 45 {
		t.Fatalf("timeout override not applied: %d", cfg.TimeoutSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level override not applied: %s", cfg.LogLevel)
	}
}

func TestTimeoutZeroMeansDisabled(t *testing.T) {
	cfg := Config{TimeoutSeconds: 0}
	if cfg.Timeout() != 0 {
		t.Fatalf("zero seconds must map to zero duration")
	}
}
