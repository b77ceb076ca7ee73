package usecase

import (
	"context"

	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/domain/repository"
)

// SongService validates input and delegates to whichever store was chosen at startup.
type SongService struct {
	repo repository.SongRepository
}

func NewSongService(repo repository.SongRepository) *SongService {
	return &SongService{repo: repo}
}

func (s *SongService) List(ctx context.Context) ([]model.Song, error) {
	return s.repo.List(ctx)
}

func (s *SongService) Get(ctx context.Context, id int64) (model.Song, error) {
	return s.repo.Get(ctx, id)
}

func (s *SongService) Search(ctx context.Context, query string) ([]model.Song, error) {
	return s.repo.Search(ctx, query)
}

func (s *SongService) Create(ctx context.Context, in model.SongInput) (model.Song, error) {
	if err := in.Validate(); err != nil {
		return model.Song{}, err
	}
	return s.repo.Create(ctx, in)
}

func (s *SongService) Update(ctx context.Context, id int64, in model.SongInput) (model.Song, error) {
	if err := in.Validate(); err != nil {
		return model.Song{}, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *SongService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
