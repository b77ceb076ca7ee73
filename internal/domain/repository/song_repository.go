package repository

import (
	"context"
	"errors"

	"github.com/kawabatas/songbook/internal/domain/model"
)

var (
	ErrNotFound = errors.New("song not found")
	// ErrReadOnly is returned by stores that cannot accept the requested write.
	ErrReadOnly = errors.New("operation not supported in read-only mode")
	// ErrUpstream is returned when a forwarded write is rejected by the remote endpoint.
	ErrUpstream = errors.New("upstream write failed")
)

// SongRepository abstracts Song persistence regardless of the underlying store.
// List and Search return songs newest first.
type SongRepository interface {
	List(ctx context.Context) ([]model.Song, error)
	Get(ctx context.Context, id int64) (model.Song, error)
	Search(ctx context.Context, query string) ([]model.Song, error)
	Create(ctx context.Context, in model.SongInput) (model.Song, error)
	Update(ctx context.Context, id int64, in model.SongInput) (model.Song, error)
	Delete(ctx context.Context, id int64) error
}
