package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ent0n29/mikueva/internal/memory"
)

const DefaultMode = "miku"

var (
	ErrEmptyBody   = errors.New("empty body")
	ErrMalformed   = errors.New("malformed json")
	ErrMissingUser = errors.New("user_id is required")
	ErrMissingText = errors.New("question is required")
)

// ValidationError reports a structurally valid body with missing or
// mistyped fields.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// ChatRequest is the POST /chat payload. Pointer fields distinguish an
// absent field from an empty string.
type ChatRequest struct {
	UserID   *string `json:"user_id"`
	Question *string `json:"question"`
	Mode     *string `json:"mode,omitempty"`
}

// ChatInput is a validated chat request.
type ChatInput struct {
	UserID   string
	Question string
	Mode     string
}

type ChatResponse struct {
	Response string `json:"response"`
	UserID   string `json:"user_id"`
	Mode     string `json:"mode"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type ClearAllResponse struct {
	Status   string   `json:"status"`
	UserID   string   `json:"user_id"`
	Personas []string `json:"personas"`
}

type ClearPersonaResponse struct {
	Status string `json:"status"`
	UserID string `json:"user_id"`
	Mode   string `json:"mode"`
}

type HistoryResponse struct {
	UserID string        `json:"user_id"`
	Mode   string        `json:"mode"`
	Turns  []memory.Turn `json:"turns"`
}

// ParseChatRequest decodes and validates a chat body. Empty strings are
// accepted; only absent or non-string fields are rejected. A missing or
// null mode defaults to "miku".
func ParseChatRequest(data []byte) (ChatInput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ChatInput{}, ErrEmptyBody
	}

	var req ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return ChatInput{}, &ValidationError{Err: errors.New("body must be a JSON object")}
			}
			return ChatInput{}, &ValidationError{Err: fmt.Errorf("%s must be a string", typeErr.Field)}
		}
		return ChatInput{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if req.UserID == nil {
		return ChatInput{}, &ValidationError{Err: ErrMissingUser}
	}
	if req.Question == nil {
		return ChatInput{}, &ValidationError{Err: ErrMissingText}
	}

	mode := DefaultMode
	if req.Mode != nil {
		mode = *req.Mode
	}
	return ChatInput{
		UserID:   *req.UserID,
		Question: *req.Question,
		Mode:     mode,
	}, nil
}

// IsValidation reports whether err came from field validation.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
