package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const FileName = "songs.sqlite"

// Path decides DB file path for given source.
// - explicit path: used as is (parent dir is created)
// - "gcs": use /tmp for Cloud Run ephemeral FS
// - otherwise: local ./tmp
func Path(source, explicit string) string {
	if explicit != "" {
		_ = os.MkdirAll(filepath.Dir(explicit), 0755)
		return explicit
	}
	if source == "gcs" {
		return filepath.Join("/tmp", FileName)
	}
	_ = os.MkdirAll("./tmp", 0755)
	return filepath.Join("./tmp", FileName)
}

// PRAGMAの意味:
//
//	journal_mode=WAL: 同時実行性向上のためWALモードを有効化
//	synchronous=NORMAL: 性能と耐障害性のバランスを取る
//	busy_timeout: ロック競合時の自動リトライ待機時間（ms）
const busyTimeoutMs = 2000 // HTTPリクエストタイムアウト(2s)に合わせる

func dsnWithPragma(path string) string {
	return fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(%d)", path, busyTimeoutMs)
}

// OpenAndInit opens the file, creates the songs table if needed and, when
// seed is set, inserts the sample songs into an empty table.
func OpenAndInit(ctx context.Context, path string, seed bool) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsnWithPragma(path))
	if err != nil {
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if seed {
		if _, err := Seed(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS songs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  song_name TEXT NOT NULL,
  artist_name TEXT NOT NULL,
  lyrics_spanish TEXT NOT NULL,
  lyrics_english TEXT,
  lyrics_german TEXT,
  youtube_link TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Seed inserts the sample songs only when the table is empty and reports how
// many rows were added. Deleting some seeded rows does not trigger a reseed.
func Seed(ctx context.Context, db *sql.DB) (int, error) {
	var cnt int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM songs`).Scan(&cnt); err != nil {
		return 0, fmt.Errorf("count songs: %w", err)
	}
	if cnt > 0 {
		slog.DebugContext(ctx, "seed skipped: table not empty", slog.Int("rows", cnt))
		return 0, nil
	}
	repo := NewSongRepo(db)
	for _, in := range SampleSongs {
		s, err := repo.Create(ctx, in)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", in.SongName, err)
		}
		slog.InfoContext(ctx, "seeded song", slog.Int64("id", s.ID), slog.String("song_name", s.SongName), slog.String("artist_name", s.ArtistName))
	}
	return len(SampleSongs), nil
}

// SnapshotTo は VACUUM INTO を用いて、SQLite DB の一貫したスナップショットを作成します。
//
// 注記:
//   - pure Go のドライバ（modernc.org/sqlite）では Online Backup API が直接は提供されていないため、
//     VACUUM INTO によるスナップショット方式を採用しています。
//
// 実装メモ:
// - busy_timeout を付けた別接続で開くことで、即時の SQLITE_BUSY を避けます。
// - 書き込みの競合などで BUSY の場合は、短いバックオフ付きで数回リトライします。
// - outPath は信頼できるパスのみを渡すこと（VACUUM INTO はパラメータ化できないためSQLインジェクション注意）。
func SnapshotTo(ctx context.Context, dbPath, outPath string) error {
	const (
		maxRetries    = 3
		baseBackoffMs = 200
	)

	db, err := sql.Open("sqlite", dsnWithPragma(dbPath))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.WarnContext(ctx, "snapshot: db close error", slog.Any("error", cerr))
		}
	}()

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		// WALファイル肥大化対策: チェックポイントでWALをtruncate
		_, _ = db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);")
		vacuumSQL := fmt.Sprintf(`VACUUM INTO '%s';`, strings.ReplaceAll(outPath, "'", "''"))
		_, err := db.ExecContext(ctx, vacuumSQL)
		if err == nil {
			slog.InfoContext(ctx, "snapshot: success", slog.Int("attempt", i+1), slog.String("out", outPath))
			return nil
		}
		lastErr = err
		if !isBusyErr(err) {
			slog.ErrorContext(ctx, "snapshot: failed", slog.Int("attempt", i+1), slog.Any("error", err))
			return err
		}
		backoff := time.Duration(baseBackoffMs*(i+1)) * time.Millisecond
		slog.WarnContext(ctx, "snapshot: busy, retrying", slog.Int("attempt", i+1), slog.Duration("sleep", backoff), slog.Any("error", err))
		t := time.NewTimer(backoff)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}
	slog.ErrorContext(ctx, "snapshot: all retries failed", slog.Any("error", lastErr))
	return lastErr
}

// isBusyErr は SQLITE_BUSY（"database is locked"）系エラーを判定します。
func isBusyErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "SQLITE_BUSY") || strings.Contains(s, "database is locked")
}
