package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ent0n29/mikueva/internal/chat"
	"github.com/ent0n29/mikueva/internal/config"
	"github.com/ent0n29/mikueva/internal/memory"
	"github.com/ent0n29/mikueva/internal/observability"
	"github.com/ent0n29/mikueva/internal/persona"
	"github.com/ent0n29/mikueva/internal/protocol"
)

const (
	ServiceStatus  = "Miku × Eva — Dual Persona Core Active"
	ServiceVersion = "3.0.0"

	maxBodyBytes = 1 << 20
)

type Chatter interface {
	HandleChat(ctx context.Context, userID, question, mode string) chat.Reply
	ClearUser(userID string)
	ClearPersona(userID, mode string)
	History(userID, mode string) []memory.Turn
}

type Server struct {
	cfg     config.Config
	chat    Chatter
	metrics *observability.Metrics
}

func New(cfg config.Config, chatter Chatter, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:     cfg,
		chat:    chatter,
		metrics: metrics,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})
	r.Get("/v1/perf/latency", s.handlePerfLatency)

	r.Post("/chat", s.handleChat)
	r.Delete("/chat/{user_id}", s.handleClearUser)
	r.Delete("/chat/{user_id}/{mode}", s.handleClearPersona)
	r.Get("/chat/{user_id}/{mode}", s.handleHistory)

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, protocol.StatusResponse{
		Status:  ServiceStatus,
		Version: ServiceVersion,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, protocol.StatusResponse{Status: "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	in, err := protocol.ParseChatRequest(body)
	switch {
	case err == nil:
	case protocol.IsValidation(err), errors.Is(err, protocol.ErrEmptyBody):
		respondError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	default:
		respondError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	reply := s.chat.HandleChat(r.Context(), in.UserID, in.Question, in.Mode)
	respondJSON(w, http.StatusOK, protocol.ChatResponse{
		Response: reply.Response,
		UserID:   reply.UserID,
		Mode:     reply.Mode,
	})
}

func (s *Server) handleClearUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathParam(r, "user_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}
	s.chat.ClearUser(userID)
	respondJSON(w, http.StatusOK, protocol.ClearAllResponse{
		Status:   "cleared",
		UserID:   userID,
		Personas: []string{persona.ModeMiku, persona.ModeEva},
	})
}

func (s *Server) handleClearPersona(w http.ResponseWriter, r *http.Request) {
	userID, mode, err := userAndMode(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}
	s.chat.ClearPersona(userID, mode)
	respondJSON(w, http.StatusOK, protocol.ClearPersonaResponse{
		Status: "cleared",
		UserID: userID,
		Mode:   mode,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, mode, err := userAndMode(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_path", err.Error())
		return
	}
	turns := s.chat.History(userID, mode)
	if turns == nil {
		turns = []memory.Turn{}
	}
	respondJSON(w, http.StatusOK, protocol.HistoryResponse{
		UserID: userID,
		Mode:   mode,
		Turns:  turns,
	})
}

// pathParam returns the decoded route parameter. chi matches against
// r.URL.RawPath when the client escaped reserved characters, so the
// captured segment can still carry %XX sequences.
func pathParam(r *http.Request, key string) (string, error) {
	value, err := url.PathUnescape(chi.URLParam(r, key))
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func userAndMode(r *http.Request) (string, string, error) {
	userID, err := pathParam(r, "user_id")
	if err != nil {
		return "", "", err
	}
	mode, err := pathParam(r, "mode")
	if err != nil {
		return "", "", err
	}
	return userID, mode, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBodyBytes {
		return nil, errors.New("request body too large")
	}
	return data, nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: strings.TrimSpace(message), Code: code})
}
