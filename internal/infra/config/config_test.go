package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv_Defaults(t *testing.T) {
	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.SheetCacheTTL)
	assert.True(t, cfg.PGSSL)
	assert.False(t, cfg.AutoInit)
	assert.NoError(t, cfg.Validate())
}

func TestNewFromEnv_Sheet(t *testing.T) {
	t.Setenv("DB_DRIVER", "sheet")
	t.Setenv("SHEET_CSV_URL", "https://docs.example.com/export?format=csv")
	t.Setenv("SHEET_CACHE_TTL", "5m")
	t.Setenv("ENABLE_AUTOINIT", "true")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sheet", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.SheetCacheTTL)
	assert.True(t, cfg.AutoInit)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr bool
	}{
		{"default sqlite", AppConfig{}, false},
		{"postgres without dsn", AppConfig{DBDriver: "postgres"}, true},
		{"postgres with fallback dsn", AppConfig{DBDriver: "postgres", PGConnectionString: "postgres://u@h/db"}, false},
		{"sheet without url", AppConfig{DBDriver: "sheet"}, true},
		{"unknown driver", AppConfig{DBDriver: "mysql"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresDSN_PrefersDatabaseURL(t *testing.T) {
	cfg := AppConfig{DatabaseURL: "postgres://a", PGConnectionString: "postgres://b"}
	assert.Equal(t, "postgres://a", cfg.PostgresDSN())
}

func TestBackupInterval(t *testing.T) {
	assert.Zero(t, AppConfig{}.BackupInterval())
	assert.Equal(t, 10*time.Minute, AppConfig{PeriodicBackup: "on"}.BackupInterval())
	assert.Equal(t, 3*time.Minute, AppConfig{PeriodicBackup: "on", PeriodicBackupMinute: "3"}.BackupInterval())
	assert.Equal(t, 10*time.Minute, AppConfig{PeriodicBackup: "on", PeriodicBackupMinute: "x"}.BackupInterval())
}

func TestSnapshotEnabled(t *testing.T) {
	assert.False(t, AppConfig{}.SnapshotEnabled())
	assert.False(t, AppConfig{StorageProvider: "gcs"}.SnapshotEnabled())
	assert.True(t, AppConfig{StorageProvider: "gcs", SqliteBucket: "b"}.SnapshotEnabled())
	assert.True(t, AppConfig{StorageProvider: "local"}.SnapshotEnabled())
}
