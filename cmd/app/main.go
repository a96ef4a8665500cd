package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lakshya-career-assistant/internal/config"
	"lakshya-career-assistant/internal/infra/coach"
	"lakshya-career-assistant/internal/infra/logging"
	"lakshya-career-assistant/internal/infra/metrics"
	"lakshya-career-assistant/internal/infra/web"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging, verbose)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Coach providers (Ollama -> Gemini -> OpenAI -> keyword) ----
	providers := []coach.Provider{
		coach.NewOllamaCoach(cfg.Coach.OllamaURL, cfg.Coach.OllamaModel),
	}
	if cfg.Coach.GeminiKey != "" {
		gem, err := coach.NewGeminiCoach(ctx, cfg.Coach.GeminiKey, cfg.Coach.GeminiURL, cfg.Coach.DefaultModel)
		if err != nil {
			log.Fatalf("gemini provider: %v", err)
		}
		providers = append(providers, gem)
		logger.Info().Str("model", cfg.Coach.DefaultModel).Msg("gemini provider enabled")
	}
	if cfg.Coach.OpenAIKey != "" {
		oa, err := coach.NewOpenAICoach(cfg.Coach.OpenAIKey, cfg.Coach.OpenAIBase, cfg.Coach.DefaultModel)
		if err != nil {
			log.Fatalf("openai provider: %v", err)
		}
		providers = append(providers, oa)
		logger.Info().Str("model", cfg.Coach.DefaultModel).Msg("openai provider enabled")
	}
	fallback := coach.NewKeywordCoach(cfg.Chat.Identity)
	providers = append(providers, fallback)
	provider := coach.NewCascade(logger, providers...)

	// ---- HTTP server ----
	srv := web.NewServer(provider, fallback, cfg.Chat.Identity, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Routes(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
