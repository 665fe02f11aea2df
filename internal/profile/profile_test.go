package profile

import (
	"testing"
	"time"
)

func TestProfileDefaults(t *testing.T) {
	clearEnvVars(t)

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"TelegramAPIURL default", "https://api.telegram.org", profile.TelegramAPIURL},
		{"AIBaseURL default", "https://openrouter.ai/api/v1", profile.AIBaseURL},
		{"AIModel default", "deepseek/deepseek-chat", profile.AIModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if profile.AITimeout != 60*time.Second {
		t.Errorf("AITimeout default: expected 60s, got %v", profile.AITimeout)
	}
}

func TestProfileFromEnv(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("CONTENTMAKER_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("CONTENTMAKER_AI_API_KEY", "test-key-123")
	t.Setenv("CONTENTMAKER_AI_MODEL", "openai/gpt-4o-mini")
	t.Setenv("CONTENTMAKER_AI_TIMEOUT", "30s")

	profile := &Profile{}
	profile.FromEnv()

	if profile.TelegramToken != "123:abc" {
		t.Errorf("TelegramToken: expected %q, got %q", "123:abc", profile.TelegramToken)
	}
	if profile.AIAPIKey != "test-key-123" {
		t.Errorf("AIAPIKey: expected %q, got %q", "test-key-123", profile.AIAPIKey)
	}
	if profile.AIModel != "openai/gpt-4o-mini" {
		t.Errorf("AIModel: expected %q, got %q", "openai/gpt-4o-mini", profile.AIModel)
	}
	if profile.AITimeout != 30*time.Second {
		t.Errorf("AITimeout: expected 30s, got %v", profile.AITimeout)
	}
}

func TestProfileFromEnvInvalidTimeout(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("CONTENTMAKER_AI_TIMEOUT", "not-a-duration")

	profile := &Profile{}
	profile.FromEnv()

	if profile.AITimeout != 60*time.Second {
		t.Errorf("invalid timeout should fall back to 60s, got %v", profile.AITimeout)
	}
}

func TestValidate(t *testing.T) {
	t.Run("unknown mode falls back to demo", func(t *testing.T) {
		p := &Profile{Mode: "staging", Driver: "sqlite", Data: t.TempDir(), TelegramToken: "123:abc"}
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if p.Mode != "demo" {
			t.Errorf("expected mode demo, got %s", p.Mode)
		}
		if p.DSN == "" {
			t.Error("expected sqlite DSN to be defaulted")
		}
	})

	t.Run("unsupported driver", func(t *testing.T) {
		p := &Profile{Mode: "dev", Driver: "mysql", Data: t.TempDir(), TelegramToken: "123:abc"}
		if err := p.Validate(); err == nil {
			t.Error("expected error for unsupported driver")
		}
	})

	t.Run("missing telegram token", func(t *testing.T) {
		p := &Profile{Mode: "dev", Driver: "sqlite", Data: t.TempDir()}
		if err := p.Validate(); err == nil {
			t.Error("expected error for missing telegram token")
		}
	})
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONTENTMAKER_TELEGRAM_TOKEN",
		"CONTENTMAKER_TELEGRAM_API_URL",
		"CONTENTMAKER_AI_API_KEY",
		"CONTENTMAKER_AI_BASE_URL",
		"CONTENTMAKER_AI_MODEL",
		"CONTENTMAKER_AI_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}
