package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ent0n29/mikueva/internal/completion"
	"github.com/ent0n29/mikueva/internal/memory"
	"github.com/ent0n29/mikueva/internal/persona"
)

type stubClient struct {
	mu       sync.Mutex
	requests []completion.Request
	reply    func(req completion.Request) completion.Result
}

func (c *stubClient) Label() string { return "Groq" }

func (c *stubClient) Complete(ctx context.Context, req completion.Request) completion.Result {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	if ctx.Err() != nil {
		return completion.Failure(ctx.Err(), "canceled")
	}
	return c.reply(req)
}

func (c *stubClient) last() completion.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests[len(c.requests)-1]
}

func fixedReply(text string) *stubClient {
	return &stubClient{reply: func(completion.Request) completion.Result {
		return completion.Success(text)
	}}
}

func TestHandleChatRecordsBothTurns(t *testing.T) {
	store := memory.NewStore()
	client := fixedReply("Konnichiwa!")
	svc := NewService(store, client, "", nil)

	reply := svc.HandleChat(context.Background(), "alice", "hello", "miku")
	assert.Equal(t, Reply{Response: "Konnichiwa!", UserID: "alice", Mode: "miku"}, reply)

	turns := store.History(persona.Miku, "alice")
	require.Len(t, turns, 2)
	assert.Equal(t, memory.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, memory.RoleAssistant, turns[1].Role)
	assert.Equal(t, "Konnichiwa!", turns[1].Content)
	assert.Empty(t, store.History(persona.Eva, "alice"))
}

func TestHandleChatBuildsPersonaRequest(t *testing.T) {
	client := fixedReply("ok")
	svc := NewService(memory.NewStore(), client, "custom-model", nil)

	svc.HandleChat(context.Background(), "u1", "first", "eva")
	svc.HandleChat(context.Background(), "u1", "second", "eva")

	req := client.last()
	eva := persona.Lookup(persona.Eva)
	assert.Equal(t, "custom-model", req.Model)
	assert.Equal(t, eva.Temperature, req.Temperature)
	assert.Equal(t, 512, req.MaxTokens)
	require.Len(t, req.Messages, 4)
	assert.Equal(t, completion.Message{Role: "system", Content: eva.SystemPrompt}, req.Messages[0])
	assert.Equal(t, completion.Message{Role: "user", Content: "first"}, req.Messages[1])
	assert.Equal(t, completion.Message{Role: "assistant", Content: "ok"}, req.Messages[2])
	assert.Equal(t, completion.Message{Role: "user", Content: "second"}, req.Messages[3])
}

func TestHandleChatDefaultModel(t *testing.T) {
	client := fixedReply("ok")
	NewService(nil, client, "", nil).HandleChat(context.Background(), "u1", "hi", "miku")
	req := client.last()
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, 0.9, req.Temperature)
}

func TestHandleChatUnknownModeUsesEva(t *testing.T) {
	store := memory.NewStore()
	client := fixedReply("ok")
	svc := NewService(store, client, "", nil)

	reply := svc.HandleChat(context.Background(), "u1", "hi", "EVA")
	assert.Equal(t, "EVA", reply.Mode)
	assert.Equal(t, 2, store.Len(persona.Eva, "u1"))
	assert.Equal(t, 0, store.Len(persona.Miku, "u1"))
	assert.Equal(t, persona.Lookup(persona.Eva).SystemPrompt, client.last().Messages[0].Content)
}

func TestHandleChatProviderFailureBecomesReply(t *testing.T) {
	store := memory.NewStore()
	client := &stubClient{reply: func(completion.Request) completion.Result {
		return completion.Failure(errors.New("timeout"), "timeout")
	}}
	svc := NewService(store, client, "", nil)

	reply := svc.HandleChat(context.Background(), "bob", "hello", "eva")
	assert.Equal(t, "Groq API Error: timeout", reply.Response)

	turns := store.History(persona.Eva, "bob")
	require.Len(t, turns, 2)
	assert.Equal(t, "Groq API Error: timeout", turns[1].Content)
}

func TestHandleChatEmptyQuestionIsSent(t *testing.T) {
	client := fixedReply("?")
	svc := NewService(memory.NewStore(), client, "", nil)

	svc.HandleChat(context.Background(), "u1", "", "miku")
	msgs := client.last().Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, completion.Message{Role: "user", Content: ""}, msgs[1])
}

func TestHandleChatRetentionWindow(t *testing.T) {
	store := memory.NewStore()
	client := &stubClient{reply: func(req completion.Request) completion.Result {
		return completion.Success("re:" + req.Messages[len(req.Messages)-1].Content)
	}}
	svc := NewService(store, client, "", nil)

	for i := 1; i <= 41; i++ {
		svc.HandleChat(context.Background(), "u1", fmt.Sprintf("q%d", i), "miku")
		assert.LessOrEqual(t, store.Len(persona.Miku, "u1"), memory.RetentionWindow)
	}

	turns := store.History(persona.Miku, "u1")
	require.Len(t, turns, memory.RetentionWindow)
	assert.Equal(t, "q22", turns[0].Content)
	assert.Equal(t, "q41", turns[len(turns)-2].Content)
	assert.Equal(t, "re:q41", turns[len(turns)-1].Content)
	for _, turn := range turns {
		assert.NotEqual(t, "q1", turn.Content)
	}

	// 40 stored turns plus the new question plus the system prompt.
	svc.HandleChat(context.Background(), "u1", "q42", "miku")
	assert.Len(t, client.last().Messages, memory.RetentionWindow+2)
}

func TestHandleChatDetachedFromCancellation(t *testing.T) {
	client := fixedReply("still here")
	svc := NewService(memory.NewStore(), client, "", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reply := svc.HandleChat(ctx, "u1", "hi", "miku")
	assert.Equal(t, "still here", reply.Response)
}

func TestClearUserAndPersona(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, fixedReply("ok"), "", nil)

	svc.HandleChat(context.Background(), "u1", "a", "miku")
	svc.HandleChat(context.Background(), "u1", "b", "eva")

	svc.ClearPersona("u1", "miku")
	assert.Empty(t, svc.History("u1", "miku"))
	assert.Len(t, svc.History("u1", "eva"), 2)

	svc.HandleChat(context.Background(), "u1", "c", "miku")
	svc.ClearUser("u1")
	assert.Empty(t, svc.History("u1", "miku"))
	assert.Empty(t, svc.History("u1", "eva"))
	assert.Equal(t, 0, store.Count())

	svc.ClearUser("nobody")
	svc.ClearPersona("nobody", "whatever")
}

func TestConcurrentUsersAreIsolated(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, fixedReply("ok"), "", nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", i)
			for j := 0; j < 5; j++ {
				svc.HandleChat(context.Background(), user, "hi", "miku")
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		assert.Equal(t, 10, store.Len(persona.Miku, fmt.Sprintf("user-%d", i)))
	}
}
