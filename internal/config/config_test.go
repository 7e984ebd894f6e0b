package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":8000" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8000")
	}
	if cfg.CompletionProvider != "auto" {
		t.Fatalf("CompletionProvider = %q, want %q", cfg.CompletionProvider, "auto")
	}
	if cfg.GroqModel != "llama-3.3-70b-versatile" {
		t.Fatalf("GroqModel = %q, want default", cfg.GroqModel)
	}
	if cfg.GroqAPIKey != "" {
		t.Fatalf("GroqAPIKey = %q, want empty default", cfg.GroqAPIKey)
	}
	if cfg.GroqMaxRetries != 0 {
		t.Fatalf("GroqMaxRetries = %d, want 0", cfg.GroqMaxRetries)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeout)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, DefaultAllowedOrigins) {
		t.Fatalf("AllowedOrigins = %v, want defaults", cfg.AllowedOrigins)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_BIND_ADDR", ":9191")
	t.Setenv("GROQ_API_KEY", "  gsk_test  ")
	t.Setenv("GROQ_MAX_RETRIES", "2")
	t.Setenv("APP_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("COMPLETION_PROVIDER", "groq")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9191" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":9191")
	}
	if cfg.GroqAPIKey != "gsk_test" {
		t.Fatalf("GroqAPIKey = %q, want trimmed key", cfg.GroqAPIKey)
	}
	if cfg.GroqMaxRetries != 2 {
		t.Fatalf("GroqMaxRetries = %d, want 2", cfg.GroqMaxRetries)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"GROQ_MAX_RETRIES":     "-1",
		"APP_SHUTDOWN_TIMEOUT": "soon",
		"COMPLETION_PROVIDER":  "llamacpp",
	}
	for key, value := range cases {
		setCoreEnvEmpty(t)
		t.Setenv(key, value)
		if _, err := Load(); err == nil {
			t.Fatalf("Load() with %s=%q expected error", key, value)
		}
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOWED_ORIGINS",
		"COMPLETION_PROVIDER",
		"GROQ_API_KEY",
		"GROQ_BASE_URL",
		"GROQ_MODEL",
		"GROQ_MAX_RETRIES",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}
