package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Maksimka7878/PADL/internal/config"
	"github.com/Maksimka7878/PADL/internal/database"
	"github.com/Maksimka7878/PADL/internal/handler"
	"github.com/Maksimka7878/PADL/internal/jobs"
	"github.com/Maksimka7878/PADL/internal/middleware"
	"github.com/Maksimka7878/PADL/internal/repository"
	"github.com/Maksimka7878/PADL/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database",
		"host", cfg.Database.Host,
		"namespace", cfg.Database.Namespace,
	)

	// Repositories
	lobbyRepo := repository.NewLobbyRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)

	// Services
	engagementService, err := service.NewEngagementService(service.EngagementServiceConfig{
		Repo:      engagementRepo,
		CacheSize: cfg.Engagement.CacheSize,
	})
	if err != nil {
		slog.Error("failed to create engagement service", "error", err)
		os.Exit(1)
	}

	metroService := service.NewMetroService()

	lobbyService := service.NewLobbyService(service.LobbyServiceConfig{
		LobbyRepo:  lobbyRepo,
		CourtRepo:  courtRepo,
		Engagement: engagementService,
	})

	feedService := service.NewFeedService(service.FeedServiceConfig{
		SerendipityProbability: cfg.Feed.SerendipityProbability,
		RandomSeed:             cfg.Feed.RandomSeed,
	})

	// Rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Background jobs
	sweeper := jobs.NewLobbySweeper(lobbyService, cfg.Sweeper.Interval)
	sweeper.Start()
	defer sweeper.Stop()

	// Handlers
	feedHandler := handler.NewFeedHandler(feedService, lobbyService, engagementService, cfg.Feed.CandidateLimit)
	lobbyHandler := handler.NewLobbyHandler(lobbyService)
	engagementHandler := handler.NewEngagementHandler(engagementService)
	courtHandler := handler.NewCourtHandler(lobbyService, metroService)
	healthHandler := handler.NewHealthHandler(db)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/feed", feedHandler.GetFeed)
	mux.HandleFunc("GET /v1/feed/sections", feedHandler.GetFeedSections)

	mux.HandleFunc("POST /v1/lobbies", lobbyHandler.CreateLobby)
	mux.HandleFunc("GET /v1/lobbies", lobbyHandler.ListLobbies)
	mux.HandleFunc("GET /v1/lobbies/{id}", lobbyHandler.GetLobby)
	mux.HandleFunc("POST /v1/lobbies/{id}/join", lobbyHandler.JoinLobby)
	mux.HandleFunc("POST /v1/lobbies/{id}/leave", lobbyHandler.LeaveLobby)
	mux.HandleFunc("POST /v1/lobbies/{id}/close", lobbyHandler.CloseLobby)
	mux.HandleFunc("DELETE /v1/lobbies/{id}", lobbyHandler.DeleteLobby)

	mux.HandleFunc("GET /v1/engagement/signals", engagementHandler.GetSignals)
	mux.HandleFunc("POST /v1/engagement/views", engagementHandler.RecordView)
	mux.HandleFunc("POST /v1/engagement/favorites", engagementHandler.RecordFavorite)
	mux.HandleFunc("DELETE /v1/engagement/favorites", engagementHandler.RemoveFavorite)
	mux.HandleFunc("POST /v1/engagement/dismissals", engagementHandler.RecordDismiss)

	mux.HandleFunc("GET /v1/courts", courtHandler.ListCourts)
	mux.HandleFunc("GET /v1/metro/lines", courtHandler.GetMetroLines)

	// Middleware chain (outermost first)
	wrapped := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Metrics,
		middleware.Compress,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"port", cfg.Server.Port,
			"env", cfg.Server.Env,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
