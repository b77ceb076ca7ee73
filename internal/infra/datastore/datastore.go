package datastore

import (
	"context"
	"fmt"
	"time"

	"github.com/kawabatas/songbook/internal/domain/repository"
)

// DataStore is an app-facing facade over the song store chosen at startup.
type DataStore interface {
	Ping(ctx context.Context) error
	Close() error
	// SetConnPool は接続プール設定を適用します。
	SetConnPool(maxOpen, maxIdle int)

	Songs() repository.SongRepository
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverSheet    = "sheet"
)

// Config captures the driver and its parameters.
type Config struct {
	Driver string // sqlite (default) | postgres | sheet

	// sqlite
	Source         string // extra hint for path decisions (e.g., "gcs")
	Path           string
	Seed           bool
	Strategy       SnapshotStrategy
	BackupInterval time.Duration // 0 disables periodic snapshots

	// postgres
	DSN    string
	UseSSL bool

	// sheet
	SheetCSVURL     string
	SheetWebhookURL string
	SheetCacheTTL   time.Duration
}

// Open selects and opens a datastore by driver.
func Open(ctx context.Context, cfg Config) (DataStore, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		return openSQLite(ctx, cfg)
	case DriverPostgres:
		return openPostgres(ctx, cfg)
	case DriverSheet:
		return openSheet(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown datastore driver %q", cfg.Driver)
	}
}
