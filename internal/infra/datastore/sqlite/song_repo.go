package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/domain/repository"
)

const songColumns = `id, song_name, artist_name, lyrics_spanish, lyrics_english, lyrics_german, youtube_link, created_at`

type SongRepo struct{ db *sql.DB }

func NewSongRepo(db *sql.DB) *SongRepo { return &SongRepo{db: db} }

var _ repository.SongRepository = (*SongRepo)(nil)

func (r *SongRepo) List(ctx context.Context) ([]model.Song, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+songColumns+`
FROM songs
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

func (r *SongRepo) Get(ctx context.Context, id int64) (model.Song, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, id)
	s, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Song{}, repository.ErrNotFound
	}
	return s, err
}

// Search matches song or artist names by substring. SQLite lower() and LIKE
// only fold ASCII, so rows are filtered here with Go's Unicode case folding.
func (r *SongRepo) Search(ctx context.Context, query string) ([]model.Song, error) {
	songs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Song{}
	for _, s := range songs {
		if s.MatchesName(query) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *SongRepo) Create(ctx context.Context, in model.SongInput) (model.Song, error) {
	in = in.Normalized()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO songs (song_name, artist_name, lyrics_spanish, lyrics_english, lyrics_german, youtube_link)
VALUES (?, ?, ?, ?, ?, ?)
`, in.SongName, in.ArtistName, in.LyricsSpanish, in.LyricsEnglish, in.LyricsGerman, in.YoutubeLink)
	if err != nil {
		return model.Song{}, fmt.Errorf("insert song: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Song{}, fmt.Errorf("last insert id: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *SongRepo) Update(ctx context.Context, id int64, in model.SongInput) (model.Song, error) {
	in = in.Normalized()
	res, err := r.db.ExecContext(ctx, `
UPDATE songs
SET song_name = ?, artist_name = ?, lyrics_spanish = ?, lyrics_english = ?, lyrics_german = ?, youtube_link = ?
WHERE id = ?
`, in.SongName, in.ArtistName, in.LyricsSpanish, in.LyricsEnglish, in.LyricsGerman, in.YoutubeLink, id)
	if err != nil {
		return model.Song{}, fmt.Errorf("update song: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Song{}, fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return model.Song{}, repository.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *SongRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(sc scanner) (model.Song, error) {
	var (
		s               model.Song
		english, german sql.NullString
	)
	if err := sc.Scan(&s.ID, &s.SongName, &s.ArtistName, &s.LyricsSpanish, &english, &german, &s.YoutubeLink, &s.CreatedAt); err != nil {
		return model.Song{}, err
	}
	s.LyricsEnglish = nullStringPtr(english)
	s.LyricsGerman = nullStringPtr(german)
	return s, nil
}

func scanSongs(rows *sql.Rows) ([]model.Song, error) {
	defer rows.Close()
	out := []model.Song{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullStringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}
