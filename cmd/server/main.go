package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/frontlinegame/frontline-server-go/internal/catalog"
	"github.com/frontlinegame/frontline-server-go/internal/config"
	"github.com/frontlinegame/frontline-server-go/internal/game"
	"github.com/frontlinegame/frontline-server-go/internal/game/rules"
	"github.com/frontlinegame/frontline-server-go/internal/repository"
	"github.com/frontlinegame/frontline-server-go/internal/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	cat, err := catalog.Load(cfg.Server.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		zap.String("path", cfg.Server.CatalogPath),
		zap.Int("card_types", cat.Len()),
	)

	decks, err := catalog.ParseDeckFile(cfg.Server.DecksPath, cat)
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}
	deckIndex := make(map[string]*catalog.DeckList, len(decks))
	for _, deck := range decks {
		deckIndex[deck.Name] = deck
	}
	logger.Info("decks loaded",
		zap.String("path", cfg.Server.DecksPath),
		zap.Int("decks", len(deckIndex)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := game.NewMatchManager(logger, cfg.Settings())
	srv := server.New(logger, manager, deckIndex, cfg.Server.Address)

	if cfg.Database.URL != "" {
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		attachResultStore(ctx, manager, repository.NewMatchRepository(db), logger)
		logger.Info("match result persistence enabled")
	}

	if err := srv.Run(ctx); err != nil {
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// attachResultStore saves a result whenever a hosted match ends.
func attachResultStore(ctx context.Context, manager *game.MatchManager, repo *repository.MatchRepository, logger *zap.Logger) {
	manager.SetMatchEndedHandler(func(m *game.Match, event rules.Event) {
		players := m.Board().Players()
		result := repository.MatchResult{
			MatchID:    m.ID(),
			PlayerA:    players[0].ID(),
			PlayerB:    players[1].ID(),
			Winner:     m.WinnerID(),
			Turns:      event.Turn,
			Duration:   m.Duration(),
			FinishedAt: time.Now(),
		}
		if err := repo.SaveResult(ctx, result); err != nil {
			logger.Error("save match result", zap.Error(err))
		}
	})
}

// initLogger builds the process logger from the logging section.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
