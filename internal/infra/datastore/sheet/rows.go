package sheet

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/util/clock"
)

// column aliases, matched case-insensitively against the header row.
var (
	idAliases            = []string{"id", "ID", "song_id"}
	songNameAliases      = []string{"song_name", "Song Name", "song", "title", "name"}
	artistNameAliases    = []string{"artist_name", "Artist Name", "artist", "singer"}
	lyricsSpanishAliases = []string{"lyrics_spanish", "Lyrics Spanish", "spanish", "letra", "Spanish Lyrics"}
	lyricsEnglishAliases = []string{"lyrics_english", "Lyrics English", "english", "English Lyrics"}
	lyricsGermanAliases  = []string{"lyrics_german", "Lyrics German", "german", "German Lyrics"}
	youtubeLinkAliases   = []string{"youtube_link", "YouTube Link", "youtube", "link", "video"}
	createdAtAliases     = []string{"created_at", "Created At", "timestamp", "date"}
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, c := range cols {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h
}

// lookup returns the first matching alias's value, or "" when none match.
func (h header) lookup(row []string, aliases []string) string {
	for _, a := range aliases {
		if i, ok := h[strings.ToLower(a)]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
	}
	return ""
}

// songsFromRows converts parsed CSV rows into songs ordered newest first.
//
// Rows without a parseable id get the next sequential id, starting at 1 and
// continuing above the largest explicit id seen so far. Explicit ids are kept
// as given; no collision check is made between explicit and assigned ids.
func songsFromRows(rows [][]string) []model.Song {
	// 空行はヘッダ判定の前に除外する
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		if !blankRow(row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return []model.Song{}
	}
	h := newHeader(kept[0])
	songs := make([]model.Song, 0, len(kept)-1)
	next := int64(1)
	for n, row := range kept[1:] {
		in := model.SongInput{
			SongName:      h.lookup(row, songNameAliases),
			ArtistName:    h.lookup(row, artistNameAliases),
			LyricsSpanish: h.lookup(row, lyricsSpanishAliases),
			LyricsEnglish: optional(h.lookup(row, lyricsEnglishAliases)),
			LyricsGerman:  optional(h.lookup(row, lyricsGermanAliases)),
			YoutubeLink:   h.lookup(row, youtubeLinkAliases),
		}
		if err := in.Validate(); err != nil {
			slog.Debug("sheet row skipped", slog.Int("record", n+1), slog.Any("error", err))
			continue
		}
		id, err := strconv.ParseInt(h.lookup(row, idAliases), 10, 64)
		if err != nil || id <= 0 {
			id = next
			next++
		} else if id >= next {
			next = id + 1
		}
		songs = append(songs, in.Song(id, parseTime(h.lookup(row, createdAtAliases))))
	}
	sort.SliceStable(songs, func(i, j int) bool {
		if songs[i].CreatedAt.Equal(songs[j].CreatedAt) {
			return songs[i].ID > songs[j].ID
		}
		return songs[i].CreatedAt.After(songs[j].CreatedAt)
	})
	return songs
}

func parseTime(s string) time.Time {
	if s != "" {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return clock.Now()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
