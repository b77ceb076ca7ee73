package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig は環境変数を読み取りアプリ全体に渡す設定です。
type AppConfig struct {
	Port        string `envconfig:"PORT" default:"8080"`
	LogProvider string `envconfig:"LOG_PROVIDER" default:"gcp"` // gcp | text
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`   // -4 | 0 | 4 | 8 or debug/info/warn/error

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite | postgres | sheet

	SqlitePath   string `envconfig:"DB_PATH"`
	SqliteSource string `envconfig:"SQLITE_SOURCE"` // local | gcs
	AutoInit     bool   `envconfig:"ENABLE_AUTOINIT" default:"false"`

	DatabaseURL        string `envconfig:"DATABASE_URL"`
	PGConnectionString string `envconfig:"PG_CONNECTION_STRING"`
	PGSSL              bool   `envconfig:"PG_SSL" default:"true"`

	SheetCSVURL     string        `envconfig:"SHEET_CSV_URL"`
	SheetWebhookURL string        `envconfig:"SHEET_WEBHOOK_URL"`
	SheetCacheTTL   time.Duration `envconfig:"SHEET_CACHE_TTL" default:"60s"`

	StorageProvider string `envconfig:"STORAGE_PROVIDER"` // gcs | local
	SqliteBucket    string `envconfig:"SQLITE_BUCKET"`    // バケット名
	SnapshotDir     string `envconfig:"SNAPSHOT_DIR"`

	PeriodicBackup       string `envconfig:"PERIODIC_BACKUP" default:"off"` // on | off
	PeriodicBackupMinute string `envconfig:"PERIODIC_BACKUP_MINUTE"`        // integer minutes (default 10)
}

// NewFromEnv reads an optional .env file and then the process environment.
func NewFromEnv() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}

// Validate checks that the selected driver has what it needs.
func (c AppConfig) Validate() error {
	switch c.DBDriver {
	case "", "sqlite":
	case "postgres":
		if c.PostgresDSN() == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case "sheet":
		if c.SheetCSVURL == "" {
			return errors.New("SHEET_CSV_URL is required for the sheet driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// PostgresDSN returns DATABASE_URL, falling back to PG_CONNECTION_STRING.
func (c AppConfig) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.PGConnectionString
}

// SnapshotEnabled はスナップショット同期を有効化すべきかの判定です。
func (c AppConfig) SnapshotEnabled() bool {
	switch c.StorageProvider {
	case "gcs":
		return c.SqliteBucket != ""
	case "local":
		return true
	}
	return false
}

// PeriodicBackupEnabled は定期バックアップが有効か判定します（既定は off）。
func (c AppConfig) PeriodicBackupEnabled() bool { return c.PeriodicBackup == "on" }

// PeriodicBackupIntervalMinutes は間隔（分）を返します（未設定は 10）。
func (c AppConfig) PeriodicBackupIntervalMinutes() int {
	if c.PeriodicBackupMinute == "" {
		return 10
	}
	// 変換失敗時も既定値
	var n int
	_, _ = fmt.Sscanf(c.PeriodicBackupMinute, "%d", &n)
	if n <= 0 {
		return 10
	}
	return n
}

// BackupInterval returns the periodic snapshot interval, or 0 when disabled.
func (c AppConfig) BackupInterval() time.Duration {
	if !c.PeriodicBackupEnabled() {
		return 0
	}
	return time.Duration(c.PeriodicBackupIntervalMinutes()) * time.Minute
}
