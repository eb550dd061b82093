package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tcardoso/deckstudy/internal/api"
	"github.com/tcardoso/deckstudy/internal/config"
	"github.com/tcardoso/deckstudy/internal/db"
	"github.com/tcardoso/deckstudy/internal/logger"
	"github.com/tcardoso/deckstudy/internal/repository/sqlite"
	"github.com/tcardoso/deckstudy/internal/services"
	"github.com/tcardoso/deckstudy/internal/study"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("DeckStudy Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("flip_delay_ms=%d", cfg.FlipDelayMS)
	log.Debug("advance_delay_ms=%d", cfg.AdvanceDelayMS)
	log.Debug("session_idle_timeout_min=%d", cfg.SessionIdleTimeoutMin)
	log.Debug("janitor_interval_sec=%d", cfg.JanitorIntervalSec)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	profileRepo := sqlite.NewProfileRepository(database.DB)
	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)

	// Initialize services
	profileService := services.NewProfileService(profileRepo)
	deckService := services.NewDeckService(deckRepo)
	cardService := services.NewCardService(cardRepo, deckRepo)
	studyService := services.NewStudyService(
		deckRepo,
		study.Config{
			FlipDelay:    time.Duration(cfg.FlipDelayMS) * time.Millisecond,
			AdvanceDelay: time.Duration(cfg.AdvanceDelayMS) * time.Millisecond,
		},
		time.Duration(cfg.SessionIdleTimeoutMin)*time.Minute,
		time.Duration(cfg.JanitorIntervalSec)*time.Second,
	)

	srv := &api.Server{
		ProfileService: profileService,
		DeckService:    deckService,
		CardService:    cardService,
		StudyService:   studyService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go studyService.RunJanitor(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping session janitor")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Tear down live study sessions so no timer outlives the process.
	log.Debug("closing study sessions")
	studyService.CloseAll()

	log.Info("===========================================")
	log.Info("DeckStudy Server Stopped")
	log.Info("===========================================")
}
