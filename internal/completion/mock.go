package completion

import (
	"context"
	"fmt"
	"strings"
)

// MockClient provides deterministic local replies when no provider key is set.
type MockClient struct{}

func NewMockClient() *MockClient { return &MockClient{} }

func (c *MockClient) Label() string { return "Mock" }

func (c *MockClient) Complete(ctx context.Context, req Request) Result {
	select {
	case <-ctx.Done():
		return Failure(ctx.Err(), "canceled")
	default:
	}
	return Success(buildMockReply(req))
}

func buildMockReply(req Request) string {
	var last string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			last = strings.TrimSpace(req.Messages[i].Content)
			break
		}
	}
	if last == "" {
		last = "..."
	}

	// History excludes the system prompt and the current user message.
	prior := len(req.Messages) - 2
	if prior <= 0 {
		return fmt.Sprintf("I heard you: %s", last)
	}
	return fmt.Sprintf("I heard you: %s\nI also remember %d earlier messages.", last, prior)
}
