package datastore

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"

	"github.com/kawabatas/songbook/internal/domain/repository"
	sqlitedriver "github.com/kawabatas/songbook/internal/infra/datastore/sqlite"
)

type sqliteStore struct {
	ctx      context.Context
	db       *sql.DB
	dbPath   string
	strategy SnapshotStrategy

	stop chan struct{}
	wg   sync.WaitGroup

	songs repository.SongRepository
}

func (s *sqliteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *sqliteStore) Close() error {
	close(s.stop)
	s.wg.Wait()
	// 終了時のスナップショットは Strategy に委譲
	if err := s.strategy.Persist(s.ctx, s.dbPath); err != nil {
		slog.ErrorContext(s.ctx, "snapshot shutdown failed", slog.Any("error", err))
	}
	return s.db.Close()
}

// SetConnPool は SQLite の接続プール設定を適用します。
// - maxOpen: 同時に開ける最大接続数
// - maxIdle: アイドル接続の最大数
func (s *sqliteStore) SetConnPool(maxOpen, maxIdle int) {
	if maxOpen > 0 {
		s.db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		s.db.SetMaxIdleConns(maxIdle)
	}
}

func (s *sqliteStore) Songs() repository.SongRepository { return s.songs }

func openSQLite(ctx context.Context, cfg Config) (DataStore, error) {
	dbPath := sqlitedriver.Path(cfg.Source, cfg.Path)
	strategy := cfg.Strategy
	if strategy == nil {
		strategy = NoopSnapshotStrategy{}
	}
	// 起動時のスナップショット復元は Strategy に委譲
	if err := strategy.Restore(ctx, dbPath); err != nil {
		return nil, err
	}
	db, err := sqlitedriver.OpenAndInit(ctx, dbPath, cfg.Seed)
	if err != nil {
		return nil, err
	}
	s := &sqliteStore{
		ctx:      ctx,
		db:       db,
		dbPath:   dbPath,
		strategy: strategy,
		stop:     make(chan struct{}),
		songs:    sqlitedriver.NewSongRepo(db),
	}
	if cfg.BackupInterval > 0 {
		s.wg.Add(1)
		go s.periodicPersist(cfg.BackupInterval)
	}
	slog.InfoContext(ctx, "sqlite datastore opened", slog.String("path", dbPath), slog.Bool("seed", cfg.Seed))
	return s, nil
}

func (s *sqliteStore) periodicPersist(every time.Duration) {
	defer s.wg.Done()
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			if err := s.strategy.Persist(s.ctx, s.dbPath); err != nil {
				slog.ErrorContext(s.ctx, "periodic snapshot failed", slog.Any("error", err))
			}
		}
	}
}
