package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gemini-chat/internal/config"
	"gemini-chat/internal/database"
	"gemini-chat/internal/handlers"
	"gemini-chat/internal/observability"
	"gemini-chat/internal/router"
	"gemini-chat/internal/services"
	"gemini-chat/internal/websocket"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)
	slog.Info("starting Gemini chat relay", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ──── Step 2: Tracing (optional) ────
	if cfg.OTLPEndpoint != "" {
		tp, err := observability.Setup(ctx, cfg.OTLPEndpoint, "gemini-chat")
		if err != nil {
			slog.Error("tracing setup failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			tp.Shutdown(shutdownCtx)
		}()
		slog.Info("tracing enabled", "endpoint", cfg.OTLPEndpoint)
	}

	// ──── Step 3: Relay counters ────
	var stats services.StatsRecorder = services.NewMemoryStats()
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			slog.Error("Redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		stats = services.NewRedisStats(redisClient)
		slog.Info("Redis connected, relay counters shared")
	}

	// ──── Step 4: Initialize Gemini provider ────
	var provider services.Provider
	switch cfg.GeminiBackend {
	case config.BackendSDK:
		sdk, err := services.NewGeminiSDKProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("Gemini client initialization failed", "error", err)
			os.Exit(1)
		}
		defer sdk.Close()
		provider = sdk
	default:
		httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
		provider = services.NewGeminiRESTProvider(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, httpClient)
	}
	slog.Info("Gemini provider ready", "backend", cfg.GeminiBackend, "model", cfg.GeminiModel)

	// ──── Step 5: Handlers ────
	chatService := services.NewChatService(provider, stats)
	chatHandler := handlers.NewChatHandler(chatService)
	wsHub := websocket.NewHub(chatService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(chatHandler, wsHub, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		wsHub.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("relay ready",
		"ui", fmt.Sprintf("http://localhost:%s/", cfg.Port),
		"api", fmt.Sprintf("http://localhost:%s/api/chat", cfg.Port),
		"ws", fmt.Sprintf("ws://localhost:%s/api/chat/ws", cfg.Port),
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
