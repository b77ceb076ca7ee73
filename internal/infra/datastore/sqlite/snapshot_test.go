package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kawabatas/songbook/internal/util/clock"
)

type recordingObjectStore struct {
	downloads []string
	uploads   []string
	backups   []string
	uploaded  int64
}

func (r *recordingObjectStore) DownloadIfNeeded(ctx context.Context, bucket, object, dest string) error {
	r.downloads = append(r.downloads, bucket+"/"+object+"->"+dest)
	return nil
}

func (r *recordingObjectStore) UploadTwoPhaseWithBackup(ctx context.Context, bucket, currentObject, backupObject, localPath string) error {
	r.uploads = append(r.uploads, bucket+"/"+currentObject)
	r.backups = append(r.backups, backupObject)
	fi, err := os.Stat(localPath)
	if err != nil {
		return err
	}
	r.uploaded = fi.Size()
	return nil
}

func countIn(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM songs`).Scan(&n))
	return n
}

func TestLocalSnapshotStrategy_Persist(t *testing.T) {
	restore := clock.Set(clock.NewFake(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)))
	defer restore()

	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, FileName)
	db, err := OpenAndInit(ctx, dbPath, true)
	require.NoError(t, err)
	defer db.Close()

	out := filepath.Join(dir, "backups")
	s := LocalSnapshotStrategy{OutputDir: out}
	require.NoError(t, s.Restore(ctx, dbPath))
	require.NoError(t, s.Persist(ctx, dbPath))

	snap := filepath.Join(out, "songs-snapshot-20250304-050607.sqlite")
	assert.FileExists(t, snap)
	assert.Equal(t, len(SampleSongs), countIn(t, snap))
}

func TestGCSSnapshotStrategy(t *testing.T) {
	restore := clock.Set(clock.NewFake(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)))
	defer restore()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), FileName)
	db, err := OpenAndInit(ctx, dbPath, true)
	require.NoError(t, err)
	defer db.Close()

	store := &recordingObjectStore{}
	s := GCSSnapshotStrategy{ObjectStore: store, Bucket: "songs-bucket"}

	require.NoError(t, s.Restore(ctx, dbPath))
	require.NoError(t, s.Persist(ctx, dbPath))

	assert.Equal(t, []string{"songs-bucket/" + FileName + "->" + dbPath}, store.downloads)
	assert.Equal(t, []string{"songs-bucket/" + FileName}, store.uploads)
	assert.Equal(t, []string{"backups/2025-03-04/050607-" + FileName}, store.backups)
	assert.Positive(t, store.uploaded)
}

func TestGCSSnapshotStrategy_NoBucketIsNoop(t *testing.T) {
	store := &recordingObjectStore{}
	s := GCSSnapshotStrategy{ObjectStore: store}
	require.NoError(t, s.Restore(context.Background(), "unused"))
	require.NoError(t, s.Persist(context.Background(), "unused"))
	assert.Empty(t, store.downloads)
	assert.Empty(t, store.uploads)
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp", FileName), Path("gcs", ""))
	explicit := filepath.Join(t.TempDir(), "nested", "x.sqlite")
	assert.Equal(t, explicit, Path("", explicit))
	assert.DirExists(t, filepath.Dir(explicit))
}
