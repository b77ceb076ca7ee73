package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/domain/repository"
)

const songColumns = `id, song_name, artist_name, lyrics_spanish, lyrics_english, lyrics_german, youtube_link, created_at`

type SongRepo struct {
	db    *sql.DB
	table string
}

// NewSongRepo returns a repo bound to table, as returned by EnsureSchema.
func NewSongRepo(db *sql.DB, table string) *SongRepo { return &SongRepo{db: db, table: table} }

var _ repository.SongRepository = (*SongRepo)(nil)

func (r *SongRepo) List(ctx context.Context) ([]model.Song, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+songColumns+` FROM `+r.table+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error getting songs: %w", err)
	}
	return scanSongs(rows)
}

func (r *SongRepo) Get(ctx context.Context, id int64) (model.Song, error) {
	s, err := scanSong(r.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM `+r.table+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Song{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Song{}, fmt.Errorf("error getting song: %w", err)
	}
	return s, nil
}

func (r *SongRepo) Search(ctx context.Context, query string) ([]model.Song, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+songColumns+`
		FROM `+r.table+`
		WHERE song_name ILIKE $1 OR artist_name ILIKE $1
		ORDER BY created_at DESC, id DESC
	`, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("error searching songs: %w", err)
	}
	return scanSongs(rows)
}

func (r *SongRepo) Create(ctx context.Context, in model.SongInput) (model.Song, error) {
	in = in.Normalized()
	s, err := scanSong(r.db.QueryRowContext(ctx, `
		INSERT INTO `+r.table+` (song_name, artist_name, lyrics_spanish, lyrics_english, lyrics_german, youtube_link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+songColumns,
		in.SongName, in.ArtistName, in.LyricsSpanish, in.LyricsEnglish, in.LyricsGerman, in.YoutubeLink))
	if err != nil {
		return model.Song{}, fmt.Errorf("error creating song: %w", err)
	}
	return s, nil
}

func (r *SongRepo) Update(ctx context.Context, id int64, in model.SongInput) (model.Song, error) {
	in = in.Normalized()
	s, err := scanSong(r.db.QueryRowContext(ctx, `
		UPDATE `+r.table+`
		SET song_name = $1, artist_name = $2, lyrics_spanish = $3, lyrics_english = $4, lyrics_german = $5, youtube_link = $6
		WHERE id = $7
		RETURNING `+songColumns,
		in.SongName, in.ArtistName, in.LyricsSpanish, in.LyricsEnglish, in.LyricsGerman, in.YoutubeLink, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Song{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Song{}, fmt.Errorf("error updating song: %w", err)
	}
	return s, nil
}

func (r *SongRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting song: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
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
	if english.Valid {
		s.LyricsEnglish = &english.String
	}
	if german.Valid {
		s.LyricsGerman = &german.String
	}
	return s, nil
}

func scanSongs(rows *sql.Rows) ([]model.Song, error) {
	defer rows.Close()
	songs := []model.Song{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning song: %w", err)
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\\' || r == '%' || r == '_' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
