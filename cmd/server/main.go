package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mage-knight-digital/knight-engine-go/internal/auth"
	"github.com/mage-knight-digital/knight-engine-go/internal/config"
	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/repository"
	"github.com/mage-knight-digital/knight-engine-go/internal/server"
	"github.com/mage-knight-digital/knight-engine-go/internal/session"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting knight engine server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Content catalog: built-in base set plus any configured expansion files.
	sets := make([]content.SetFile, 0, len(cfg.Content.Sets))
	for _, path := range cfg.Content.Sets {
		set, err := content.LoadSetFromPath(path)
		if err != nil {
			logger.Fatal("failed to load content set",
				zap.String("path", path), zap.Error(err))
		}
		sets = append(sets, set)
		logger.Info("content set loaded",
			zap.String("path", path), zap.String("name", set.Name))
	}
	catalog := content.NewCatalog(append([]content.SetFile{content.BuiltinSet()}, sets...)...)

	// Database is optional: without one, games live in memory only.
	var store *repository.GameStore
	if cfg.Database.URL != "" {
		pool, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		if err := repository.Bootstrap(ctx, pool); err != nil {
			logger.Fatal("failed to bootstrap schema", zap.Error(err))
		}
		store = repository.NewGameStore(pool)
		logger.Info("game persistence enabled")
	} else {
		logger.Warn("no database configured; games are not persisted")
	}

	sessionMgr := session.NewManager(cfg.Server.LeasePeriod, cfg.Server.MaxSessions, logger)
	go sessionMgr.CleanupExpiredSessions(ctx)
	logger.Info("session manager initialized",
		zap.Duration("lease_period", cfg.Server.LeasePeriod),
		zap.Int("max_sessions", cfg.Server.MaxSessions),
	)

	tokenStore := auth.NewTokenStore(cfg.Auth.TokenTTL)
	logger.Info("auth token store initialized",
		zap.Duration("token_ttl", cfg.Auth.TokenTTL),
	)

	opts := []server.GatewayOption{server.WithTokenStore(tokenStore)}
	if store != nil {
		opts = append(opts, server.WithStore(store))
	}
	if cfg.Replay.Enabled {
		opts = append(opts, server.WithReplayDir(cfg.Replay.Directory))
	}
	if cfg.Server.Debug {
		opts = append(opts, server.WithDebugGames())
	}
	gateway := server.NewGateway(logger, catalog, sessionMgr, opts...)

	// Resume unfinished games from the database.
	if store != nil {
		ids, err := store.ListOpen(ctx)
		if err != nil {
			logger.Error("failed to list open games", zap.Error(err))
		}
		for _, id := range ids {
			if err := gateway.ResumeGame(ctx, id); err != nil {
				logger.Error("failed to resume game",
					zap.String("game_id", id), zap.Error(err))
			}
		}
		logger.Info("open games resumed", zap.Int("count", gateway.GameCount()))
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", gateway.Handler())
	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: mux,
	}

	go func() {
		logger.Info("websocket server listening", zap.String("address", cfg.Server.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("websocket server error", zap.Error(serveErr))
		}
	}()

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}

	gateway.Shutdown()
	sessionMgr.CloseAll()

	logger.Info("knight engine server stopped")
}

// initLogger initializes the zap logger based on configuration.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
