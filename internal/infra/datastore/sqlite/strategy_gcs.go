package sqlite

import (
	"context"
	"os"
	"path/filepath"

	storageif "github.com/kawabatas/songbook/internal/infra/storage"
	"github.com/kawabatas/songbook/internal/util/clock"
)

// GCSSnapshotStrategy は SQLite のスナップショットを GCS（等のObjectStore）に同期する戦略です。
// - 起動時: FileName をローカルにダウンロード
// - 永続化時: VACUUM INTO で一貫スナップショットを作成 → 二相アップロード + backups/ に保管
type GCSSnapshotStrategy struct {
	ObjectStore storageif.ObjectStore
	Bucket      string
}

func (s GCSSnapshotStrategy) Restore(ctx context.Context, dbPath string) error {
	if s.ObjectStore == nil || s.Bucket == "" {
		return nil
	}
	return s.ObjectStore.DownloadIfNeeded(ctx, s.Bucket, FileName, dbPath)
}

func (s GCSSnapshotStrategy) Persist(ctx context.Context, dbPath string) error {
	if s.ObjectStore == nil || s.Bucket == "" {
		return nil
	}
	snap := filepath.Join(os.TempDir(), "songs-snapshot-"+clock.NowUTCFormatted("20060102-150405")+".sqlite")
	if err := SnapshotTo(ctx, dbPath, snap); err != nil {
		return err
	}
	defer os.Remove(snap)
	backupKey := "backups/" + clock.NowUTCFormatted("2006-01-02") + "/" + clock.NowUTCFormatted("150405") + "-" + FileName
	return s.ObjectStore.UploadTwoPhaseWithBackup(ctx, s.Bucket, FileName, backupKey, snap)
}
