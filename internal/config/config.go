package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAllowedOrigins are the frontends allowed to call the API from a browser.
var DefaultAllowedOrigins = []string{
	"https://miku-x-eva-1af1.onrender.com",
	"http://localhost:5173",
	"http://localhost:3000",
}

// Config contains all runtime settings for the persona relay.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	// AllowedOrigins are matched exactly, not as patterns.
	AllowedOrigins []string

	CompletionProvider string

	GroqAPIKey     string
	GroqBaseURL    string
	GroqModel      string
	GroqMaxRetries int
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:           envOrDefault("APP_BIND_ADDR", ":8000"),
		MetricsNamespace:   envOrDefault("APP_METRICS_NAMESPACE", "mikueva"),
		AllowedOrigins:     listFromEnv("APP_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		CompletionProvider: envOrDefault("COMPLETION_PROVIDER", "auto"),
		GroqAPIKey:         trimmedEnv("GROQ_API_KEY"),
		GroqBaseURL:        envOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:          envOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		// The relay makes exactly one upstream call per chat unless told otherwise.
		GroqMaxRetries:  0,
		ShutdownTimeout: 15 * time.Second,
	}
	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.GroqMaxRetries, err = intFromEnv("GROQ_MAX_RETRIES", cfg.GroqMaxRetries)
	if err != nil {
		return Config{}, err
	}

	if cfg.GroqMaxRetries < 0 {
		return Config{}, fmt.Errorf("GROQ_MAX_RETRIES must be >= 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be positive")
	}
	switch strings.ToLower(cfg.CompletionProvider) {
	case "auto", "groq", "mock":
	default:
		return Config{}, fmt.Errorf("invalid COMPLETION_PROVIDER: %q (expected auto|groq|mock)", cfg.CompletionProvider)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := trimmedEnv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

// listFromEnv splits a comma-separated value, dropping blanks.
func listFromEnv(key string, fallback []string) []string {
	v := trimmedEnv(key)
	if v == "" {
		out := make([]string, len(fallback))
		copy(out, fallback)
		return out
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
