package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ent0n29/mikueva/internal/chat"
	"github.com/ent0n29/mikueva/internal/completion"
	"github.com/ent0n29/mikueva/internal/config"
	"github.com/ent0n29/mikueva/internal/httpapi"
	"github.com/ent0n29/mikueva/internal/memory"
	"github.com/ent0n29/mikueva/internal/observability"
)

func main() {
	if err := loadDotEnv(); err != nil {
		log.Printf(".env load failed, relying on process environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	client, err := completion.NewClient(completion.Config{
		Mode:       cfg.CompletionProvider,
		APIKey:     cfg.GroqAPIKey,
		BaseURL:    cfg.GroqBaseURL,
		MaxRetries: cfg.GroqMaxRetries,
	})
	if err != nil {
		log.Fatalf("completion client init failed: %v", err)
	}
	log.Printf("completion provider: %s (model %s)", client.Label(), cfg.GroqModel)

	// Conversations live only as long as the process.
	store := memory.NewStore()
	service := chat.NewService(store, client, cfg.GroqModel, metrics)

	api := httpapi.New(cfg, service, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete (%d conversations discarded)", store.Count())
}

// loadDotEnv reads .env (or the given files) into the process environment.
// A missing file is not an error.
func loadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("no .env file found, relying on process environment")
		return nil
	}
	return err
}
