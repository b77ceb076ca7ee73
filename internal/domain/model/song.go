package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation is returned when a required song field is missing.
var ErrValidation = errors.New("song name, artist name, Spanish lyrics, and YouTube link are required")

type Song struct {
	ID            int64     `json:"id,omitempty"`
	SongName      string    `json:"song_name"`
	ArtistName    string    `json:"artist_name"`
	LyricsSpanish string    `json:"lyrics_spanish"`
	LyricsEnglish *string   `json:"lyrics_english"`
	LyricsGerman  *string   `json:"lyrics_german"`
	YoutubeLink   string    `json:"youtube_link"`
	CreatedAt     time.Time `json:"created_at"`
}

// MatchesName reports whether query is a case-insensitive substring of the
// song or artist name. Case folding is Unicode-aware ("ÁLVARO" finds "Álvaro").
func (s Song) MatchesName(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(s.SongName), q) ||
		strings.Contains(strings.ToLower(s.ArtistName), q)
}

// SongInput is the client-supplied part of a Song used by create and update.
type SongInput struct {
	SongName      string  `json:"song_name"`
	ArtistName    string  `json:"artist_name"`
	LyricsSpanish string  `json:"lyrics_spanish"`
	LyricsEnglish *string `json:"lyrics_english"`
	LyricsGerman  *string `json:"lyrics_german"`
	YoutubeLink   string  `json:"youtube_link"`
}

// Validate reports ErrValidation (wrapped with the missing field names) when
// any required field is empty.
func (in SongInput) Validate() error {
	var missing []string
	for _, f := range []struct{ name, v string }{
		{"song_name", in.SongName},
		{"artist_name", in.ArtistName},
		{"lyrics_spanish", in.LyricsSpanish},
		{"youtube_link", in.YoutubeLink},
	} {
		if strings.TrimSpace(f.v) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w (missing: %s)", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Normalized returns a copy with empty optional lyrics turned into nil.
func (in SongInput) Normalized() SongInput {
	in.LyricsEnglish = emptyToNil(in.LyricsEnglish)
	in.LyricsGerman = emptyToNil(in.LyricsGerman)
	return in
}

// Song builds a record from the input with the given id and creation time.
func (in SongInput) Song(id int64, createdAt time.Time) Song {
	return Song{
		ID:            id,
		SongName:      in.SongName,
		ArtistName:    in.ArtistName,
		LyricsSpanish: in.LyricsSpanish,
		LyricsEnglish: in.LyricsEnglish,
		LyricsGerman:  in.LyricsGerman,
		YoutubeLink:   in.YoutubeLink,
		CreatedAt:     createdAt,
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
