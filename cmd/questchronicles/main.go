// Package main provides the Quest Chronicles console game binary.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quest-chronicles/internal/config"
	"github.com/cory-johannsen/quest-chronicles/internal/content"
	"github.com/cory-johannsen/quest-chronicles/internal/frontend/console"
	"github.com/cory-johannsen/quest-chronicles/internal/game/dice"
	"github.com/cory-johannsen/quest-chronicles/internal/game/session"
	"github.com/cory-johannsen/quest-chronicles/internal/observability"
	"github.com/cory-johannsen/quest-chronicles/internal/storage/postgres"
	"github.com/cory-johannsen/quest-chronicles/internal/storage/savefile"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seed := flag.Uint64("seed", 0, "seed for reproducible randomness; 0 = crypto source")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	written, err := content.Materialize(cfg.Content.Dir, logger)
	if err != nil {
		logger.Fatal("writing default content", zap.Error(err))
	}
	if len(written) > 0 {
		logger.Info("created default content files", zap.Int("count", len(written)))
	}
	lib, err := content.Load(cfg.Content, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	var store session.CharacterStore
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		if err := postgres.MigrateUp(cfg.Database); err != nil {
			logger.Fatal("migrating database", zap.Error(err))
		}
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		store = postgres.NewCharacterRepository(pool.DB(), logger)
	default:
		store = savefile.NewStore(cfg.Storage.SaveDir, logger)
	}

	var src dice.Source = dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	src = dice.NewLoggedSource(src, logger)

	sess := session.New(lib, store, src, cfg.Game, logger)
	logger.Info("quest chronicles ready",
		zap.String("storage", cfg.Storage.Backend),
		zap.Duration("elapsed", time.Since(start)),
	)

	if err := console.New(sess, os.Stdin, os.Stdout, logger).Run(ctx); err != nil {
		logger.Error("console stopped", zap.Error(err))
		os.Exit(1)
	}
}
