package completion

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/ent0n29/mikueva/internal/reliability"
)

const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient talks to Groq through its OpenAI-compatible chat endpoint.
type GroqClient struct {
	client openai.Client
}

func NewGroqClient(apiKey, baseURL string, maxRetries int, opts ...option.RequestOption) *GroqClient {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	all := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithMaxRetries(maxRetries),
	}
	all = append(all, opts...)
	return &GroqClient{client: openai.NewClient(all...)}
}

func (c *GroqClient) Label() string { return "Groq" }

func (c *GroqClient) Complete(ctx context.Context, req Request) Result {
	chatMessages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			chatMessages[i] = openai.SystemMessage(msg.Content)
		case RoleAssistant:
			chatMessages[i] = openai.AssistantMessage(msg.Content)
		default:
			chatMessages[i] = openai.UserMessage(msg.Content)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(req.Model),
		Messages:    chatMessages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return classify(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return Failure(errors.New("empty response"), "empty_response")
	}
	return Success(resp.Choices[0].Message.Content)
}

func classify(err error) Result {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		res := Failure(err, reliability.ClassifyHTTPStatus(apiErr.StatusCode))
		res.Retryable = reliability.IsRetryableHTTPStatus(apiErr.StatusCode)
		return res
	}
	res := Failure(err, reliability.ClassifyTransportError(err))
	res.Retryable = reliability.IsRetryableCode(res.Code)
	return res
}
