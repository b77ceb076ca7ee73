package sqlite

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kawabatas/songbook/internal/util/clock"
)

// LocalSnapshotStrategy writes a dated snapshot into OutputDir on every Persist.
type LocalSnapshotStrategy struct {
	OutputDir string
}

func (LocalSnapshotStrategy) Restore(ctx context.Context, dbPath string) error { return nil }

func (s LocalSnapshotStrategy) Persist(ctx context.Context, dbPath string) error {
	dir := s.OutputDir
	if dir == "" {
		dir = filepath.Join("./tmp", "backups")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	snap := filepath.Join(dir, "songs-snapshot-"+clock.NowUTCFormatted("20060102-150405")+".sqlite")
	// VACUUM INTO は出力先が既に存在すると失敗する
	_ = os.Remove(snap)
	return SnapshotTo(ctx, dbPath, snap)
}
