// Command seed creates the SQLite songs table and inserts the sample songs
// when the table is empty.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/kawabatas/songbook/internal/infra/config"
	sqlitedriver "github.com/kawabatas/songbook/internal/infra/datastore/sqlite"
	"github.com/kawabatas/songbook/internal/infra/platform/logger"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logger.New(cfg.LogProvider, logger.ParseLevel(cfg.LogLevel)))

	ctx := context.Background()
	path := sqlitedriver.Path(cfg.SqliteSource, cfg.SqlitePath)
	db, err := sqlitedriver.OpenAndInit(ctx, path, false)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	n, err := sqlitedriver.Seed(ctx, db)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if n == 0 {
		slog.Info("songs table already has data, nothing seeded", slog.String("path", path))
		return
	}
	slog.Info("seed complete", slog.Int("songs", n), slog.String("path", path))
}
