package datastore

import (
	"context"
	"log/slog"

	"github.com/kawabatas/songbook/internal/domain/repository"
	sheetdriver "github.com/kawabatas/songbook/internal/infra/datastore/sheet"
)

type sheetStore struct {
	songs *sheetdriver.SongRepo
}

// Ping reads through the cache, so it only reaches the sheet when the cache is stale.
func (s *sheetStore) Ping(ctx context.Context) error {
	_, err := s.songs.List(ctx)
	return err
}
func (s *sheetStore) Close() error                     { return nil }
func (s *sheetStore) SetConnPool(maxOpen, maxIdle int) {}
func (s *sheetStore) Songs() repository.SongRepository { return s.songs }

func openSheet(ctx context.Context, cfg Config) (DataStore, error) {
	repo := sheetdriver.NewSongRepo(sheetdriver.Config{
		CSVURL:     cfg.SheetCSVURL,
		WebhookURL: cfg.SheetWebhookURL,
		TTL:        cfg.SheetCacheTTL,
	})
	// 起動時に一度取得しておく（失敗しても起動は継続）
	if err := repo.Refresh(ctx); err != nil {
		slog.WarnContext(ctx, "initial sheet fetch failed", slog.Any("error", err))
	}
	slog.InfoContext(ctx, "sheet datastore opened", slog.Bool("read_only", repo.ReadOnly()))
	return &sheetStore{songs: repo}, nil
}
