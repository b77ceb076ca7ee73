package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "github.com/kawabatas/songbook/internal/app/http"
	"github.com/kawabatas/songbook/internal/httpx"
	"github.com/kawabatas/songbook/internal/infra/config"
	"github.com/kawabatas/songbook/internal/infra/datastore"
	sqlitestrat "github.com/kawabatas/songbook/internal/infra/datastore/sqlite"
	"github.com/kawabatas/songbook/internal/infra/platform/logger"
	gcsstore "github.com/kawabatas/songbook/internal/infra/storage/gcs"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logger.New(cfg.LogProvider, logger.ParseLevel(cfg.LogLevel)))
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	// スナップショット戦略（SQLite のみ）を選択
	var strat datastore.SnapshotStrategy = datastore.NoopSnapshotStrategy{}
	objStore := &gcsstore.Adapter{}
	defer objStore.Close()
	if (cfg.DBDriver == "" || cfg.DBDriver == datastore.DriverSQLite) && cfg.SnapshotEnabled() {
		switch cfg.StorageProvider {
		case "gcs":
			strat = sqlitestrat.GCSSnapshotStrategy{ObjectStore: objStore, Bucket: cfg.SqliteBucket}
		case "local":
			strat = sqlitestrat.LocalSnapshotStrategy{OutputDir: cfg.SnapshotDir}
		}
	}

	ds, err := datastore.Open(ctx, datastore.Config{
		Driver:          cfg.DBDriver,
		Source:          cfg.SqliteSource,
		Path:            cfg.SqlitePath,
		Seed:            cfg.AutoInit,
		Strategy:        strat,
		BackupInterval:  cfg.BackupInterval(),
		DSN:             cfg.PostgresDSN(),
		UseSSL:          cfg.PGSSL,
		SheetCSVURL:     cfg.SheetCSVURL,
		SheetWebhookURL: cfg.SheetWebhookURL,
		SheetCacheTTL:   cfg.SheetCacheTTL,
	})
	if err != nil {
		log.Fatalf("datastore open error: %v", err)
	}
	// 接続プール設定: 最大接続・アイドルともに 10
	ds.SetConnPool(10, 10)
	defer ds.Close()

	mux := http.NewServeMux()
	apphttp.Register(mux, ds)

	handler := httpx.LoggingMiddleware(httpx.CORSMiddleware(httpx.RecoverMiddleware(mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           http.TimeoutHandler(handler, 15*time.Second, `{"error":"timeout"}`),
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		slog.Info("server starting", slog.String("addr", srv.Addr), slog.String("driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		slog.Info("server stopped accepting new conns")
	}()

	// シャットダウン待受け
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		slog.Error("shutdown error", slog.Any("error", err))
	}
	slog.Info("graceful shutdown complete")
}
