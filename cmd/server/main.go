package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tasknotify/telegram-relay-go/internal/channel"
	"github.com/tasknotify/telegram-relay-go/internal/config"
	"github.com/tasknotify/telegram-relay-go/internal/handler"
	"github.com/tasknotify/telegram-relay-go/internal/jobs"
	"github.com/tasknotify/telegram-relay-go/internal/middleware"
	"github.com/tasknotify/telegram-relay-go/internal/resolver"
	"github.com/tasknotify/telegram-relay-go/internal/store"
	"github.com/tasknotify/telegram-relay-go/internal/telegram"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	var sessions store.SessionStore
	switch cfg.SessionStore {
	case config.StoreRedis:
		redisStore, err := store.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		sessions = redisStore
		log.Info().Msg("redis session store connected")

	case config.StorePostgres:
		pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pgStore.Close()

		ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
		if err := pgStore.Ping(ctx); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("failed to ping database")
		}
		if err := pgStore.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("failed to ensure schema")
		}
		cancel()
		sessions = pgStore
		log.Info().Msg("postgres session store connected")

	default:
		fileStore, err := store.NewFileStore(cfg.SessionDir)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open session directory")
		}
		sessions = fileStore
		log.Info().Str("dir", cfg.SessionDir).Msg("file session store ready")
	}

	transport := telegram.NewClient(cfg.BotToken, cfg.ForceIPv4)
	notifyChannel := channel.New(cfg, sessions, transport, resolver.TmuxResolver{})

	if err := notifyChannel.Validate(); err != nil {
		log.Fatal().Err(err).Msg("channel validation failed")
	}

	notifyHandler := handler.NewNotifyHandler(notifyChannel)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"channel":   notifyChannel.Name(),
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/", notifyHandler.Routes())
	})

	cleanupJob := jobs.NewCleanupJob(sessions, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
