package completion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the ordered dialogue sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single non-streaming completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Result is either reply text or the reason the call failed.
type Result struct {
	Text      string
	Err       error
	Code      string
	Retryable bool
}

func (r Result) OK() bool { return r.Err == nil }

func Success(text string) Result { return Result{Text: text} }

func Failure(err error, code string) Result {
	if err == nil {
		err = errors.New("unknown completion failure")
	}
	if code == "" {
		code = "unknown"
	}
	return Result{Err: err, Code: code}
}

// Client performs completion calls against a language-model provider.
type Client interface {
	Complete(ctx context.Context, req Request) Result
	// Label names the provider in user-visible diagnostics.
	Label() string
}

// Config controls client construction.
type Config struct {
	Mode       string
	APIKey     string
	BaseURL    string
	MaxRetries int
}

func NewClient(cfg Config) (Client, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.APIKey) != "" {
			return NewGroqClient(cfg.APIKey, cfg.BaseURL, cfg.MaxRetries), nil
		}
		log.Printf("completion provider: GROQ_API_KEY not set, using mock replies")
		return NewMockClient(), nil
	case "groq":
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, errors.New("groq API key is required for groq mode")
		}
		return NewGroqClient(cfg.APIKey, cfg.BaseURL, cfg.MaxRetries), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.Mode)
	}
}
