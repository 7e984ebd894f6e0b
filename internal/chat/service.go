package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ent0n29/mikueva/internal/completion"
	"github.com/ent0n29/mikueva/internal/memory"
	"github.com/ent0n29/mikueva/internal/observability"
	"github.com/ent0n29/mikueva/internal/persona"
)

const DefaultModel = "llama-3.3-70b-versatile"

// Reply is the outcome of one chat exchange. Mode echoes the caller's raw
// mode string.
type Reply struct {
	Response string
	UserID   string
	Mode     string
}

// Service routes chat turns to a persona, records them and calls the
// completion provider.
type Service struct {
	store   *memory.Store
	client  completion.Client
	model   string
	metrics *observability.Metrics
}

func NewService(store *memory.Store, client completion.Client, model string, metrics *observability.Metrics) *Service {
	if store == nil {
		store = memory.NewStore()
	}
	if model == "" {
		model = DefaultModel
	}
	return &Service{
		store:   store,
		client:  client,
		model:   model,
		metrics: metrics,
	}
}

// HandleChat records the question, asks the persona's model for a reply and
// records that too. Provider failures come back as reply text, never as an
// error.
func (s *Service) HandleChat(ctx context.Context, userID, question, mode string) Reply {
	start := time.Now()
	p := persona.For(mode)

	if question == "" {
		s.metrics.ObserveIndicator(observability.IndicatorEmptyQuestion)
	}

	s.store.Append(p.Mode, userID, memory.RoleUser, question)
	history := s.store.GetOrCreate(p.Mode, userID)

	// The upstream call is never cancelled once started, even if the client goes away.
	callStart := time.Now()
	res := s.client.Complete(context.WithoutCancel(ctx), completion.Request{
		Model:       s.model,
		Messages:    buildMessages(p, history),
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
	s.metrics.ObserveCompletion(time.Since(callStart))

	reply := res.Text
	outcome := "ok"
	if !res.OK() {
		reply = s.diagnostic(res)
		outcome = "upstream_error"
		s.metrics.ObserveProviderError(s.client.Label(), res.Code)
		log.Printf("completion failed provider=%s mode=%s code=%s retryable=%t: %v",
			s.client.Label(), p.Mode, res.Code, res.Retryable, res.Err)
	}

	s.store.Append(p.Mode, userID, memory.RoleAssistant, reply)
	s.store.Trim(p.Mode, userID)

	s.metrics.SetStoredConversations(s.store.Count())
	s.metrics.ObserveChat(p.Mode.String(), outcome, time.Since(start))

	return Reply{Response: reply, UserID: userID, Mode: mode}
}

// ClearUser forgets userID under every persona.
func (s *Service) ClearUser(userID string) {
	s.store.ClearAll(userID)
	s.metrics.ObserveCleared("all", s.store.Count())
}

// ClearPersona forgets userID under the persona selected by mode.
func (s *Service) ClearPersona(userID, mode string) {
	s.store.Clear(persona.Resolve(mode), userID)
	s.metrics.ObserveCleared("persona", s.store.Count())
}

// History returns the stored turns for userID under the persona selected by mode.
func (s *Service) History(userID, mode string) []memory.Turn {
	return s.store.History(persona.Resolve(mode), userID)
}

func (s *Service) diagnostic(res completion.Result) string {
	return fmt.Sprintf("%s API Error: %s", s.client.Label(), res.Err.Error())
}

func buildMessages(p persona.Persona, history []memory.Turn) []completion.Message {
	out := make([]completion.Message, 0, len(history)+1)
	out = append(out, completion.Message{Role: completion.RoleSystem, Content: p.SystemPrompt})
	for _, turn := range history {
		out = append(out, completion.Message{Role: string(turn.Role), Content: turn.Content})
	}
	return out
}
