package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kawabatas/songbook/internal/util/clock"
)

func ids(t *testing.T, rows [][]string) map[string]int64 {
	t.Helper()
	out := map[string]int64{}
	for _, s := range songsFromRows(rows) {
		out[s.SongName] = s.ID
	}
	return out
}

func TestSongsFromRows_Aliases(t *testing.T) {
	rows := ParseCSV("Song Name,ARTIST,Letra,English Lyrics,link,Created At\n" +
		"Antología,Shakira,Para amarte,To love you,https://youtu.be/x,2024-01-02 03:04:05\n")

	songs := songsFromRows(rows)
	require.Len(t, songs, 1)
	s := songs[0]
	assert.Equal(t, int64(1), s.ID)
	assert.Equal(t, "Antología", s.SongName)
	assert.Equal(t, "Shakira", s.ArtistName)
	assert.Equal(t, "Para amarte", s.LyricsSpanish)
	require.NotNil(t, s.LyricsEnglish)
	assert.Equal(t, "To love you", *s.LyricsEnglish)
	assert.Nil(t, s.LyricsGerman)
	assert.Equal(t, "https://youtu.be/x", s.YoutubeLink)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), s.CreatedAt)
}

func TestSongsFromRows_IDAssignment(t *testing.T) {
	head := []string{"id", "song_name", "artist_name", "lyrics_spanish", "youtube_link"}
	row := func(id, name string) []string { return []string{id, name, "a", "l", "y"} }

	t.Run("sequential", func(t *testing.T) {
		got := ids(t, [][]string{head, row("", "A"), row("", "B"), row("x", "C")})
		assert.Equal(t, map[string]int64{"A": 1, "B": 2, "C": 3}, got)
	})
	t.Run("continues above explicit max", func(t *testing.T) {
		got := ids(t, [][]string{head, row("10", "A"), row("", "B"), row("4", "C"), row("", "D")})
		assert.Equal(t, map[string]int64{"A": 10, "B": 11, "C": 4, "D": 12}, got)
	})
	t.Run("explicit later than assigned may collide", func(t *testing.T) {
		got := songsFromRows([][]string{head, row("", "A"), row("1", "B")})
		require.Len(t, got, 2)
		assert.Equal(t, got[0].ID, got[1].ID)
	})
}

func TestSongsFromRows_SkipsBlankAndIncompleteRows(t *testing.T) {
	rows := ParseCSV("song_name,artist_name,lyrics_spanish,youtube_link\n" +
		",,,\n" +
		"\n" +
		"No link,Artist,Letra,\n" +
		"Keep,Artist,Letra,https://y\n")

	songs := songsFromRows(rows)
	require.Len(t, songs, 1)
	assert.Equal(t, "Keep", songs[0].SongName)
	assert.Equal(t, int64(1), songs[0].ID)
}

func TestSongsFromRows_LeadingBlankLines(t *testing.T) {
	rows := ParseCSV("\n,,\nsong_name,artist_name,lyrics_spanish,youtube_link\nA,B,C,D")

	songs := songsFromRows(rows)
	require.Len(t, songs, 1)
	assert.Equal(t, "A", songs[0].SongName)
	assert.Equal(t, "B", songs[0].ArtistName)
	assert.Equal(t, int64(1), songs[0].ID)
}

func TestSongsFromRows_OrderAndDefaultTime(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	defer clock.Set(clock.NewFake(now))()

	rows := ParseCSV("song_name,artist_name,lyrics_spanish,youtube_link,timestamp\n" +
		"Old,A,L,Y,1/2/2020 10:00:00\n" +
		"Undated,A,L,Y,\n" +
		"Newer,A,L,Y,2021-06-01T00:00:00Z\n")

	songs := songsFromRows(rows)
	require.Len(t, songs, 3)
	assert.Equal(t, "Undated", songs[0].SongName)
	assert.Equal(t, now, songs[0].CreatedAt)
	assert.Equal(t, "Newer", songs[1].SongName)
	assert.Equal(t, "Old", songs[2].SongName)
}

func TestSongsFromRows_Empty(t *testing.T) {
	assert.Empty(t, songsFromRows(nil))
	assert.Empty(t, songsFromRows([][]string{{"song_name"}}))
	assert.Empty(t, songsFromRows([][]string{{""}, {" ", ""}}))
}
