package sheet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/domain/repository"
	"github.com/kawabatas/songbook/internal/util/clock"
)

const sheetCSV = "id,song_name,artist_name,lyrics_spanish,youtube_link,created_at\n" +
	"1,Hips Don't Lie,Shakira,Letra,https://y/1,2024-01-01 00:00:00\n" +
	"2,Tití Me Preguntó,Bad Bunny,Letra,https://y/2,2024-02-01 00:00:00\n"

type sheetServer struct {
	*httptest.Server
	fetches atomic.Int32
	mu      sync.Mutex
	body    string
}

func newSheetServer(t *testing.T, body string) *sheetServer {
	t.Helper()
	s := &sheetServer{body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.fetches.Add(1)
		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(s.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *sheetServer) setBody(body string) {
	s.mu.Lock()
	s.body = body
	s.mu.Unlock()
}

func validSong() model.SongInput {
	return model.SongInput{SongName: "Nueva", ArtistName: "Juanes", LyricsSpanish: "Letra", YoutubeLink: "https://y/3"}
}

func TestSongRepo_ListGetSearch(t *testing.T) {
	ctx := context.Background()
	srv := newSheetServer(t, sheetCSV)
	repo := NewSongRepo(Config{CSVURL: srv.URL, TTL: time.Minute})

	songs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, int64(2), songs[0].ID)

	s, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Shakira", s.ArtistName)

	_, err = repo.Get(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	found, err := repo.Search(ctx, "SHAK")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].ID)

	found, err = repo.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)

	assert.Equal(t, int32(1), srv.fetches.Load())
}

func TestSongRepo_CacheTTL(t *testing.T) {
	fake := clock.NewFake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	defer clock.Set(fake)()

	ctx := context.Background()
	srv := newSheetServer(t, sheetCSV)
	repo := NewSongRepo(Config{CSVURL: srv.URL, TTL: 30 * time.Second})

	_, err := repo.List(ctx)
	require.NoError(t, err)
	fake.Advance(10 * time.Second)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), srv.fetches.Load(), "two reads within ttl fetch once")

	srv.setBody("song_name,artist_name,lyrics_spanish,youtube_link\nOnly,One,L,Y\n")
	fake.Advance(30 * time.Second)
	songs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), srv.fetches.Load())
	require.Len(t, songs, 1, "refetch fully replaces cached rows")
	assert.Equal(t, "Only", songs[0].SongName)
}

func TestSongRepo_FetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := NewSongRepo(Config{CSVURL: srv.URL, TTL: time.Minute})
	_, err := repo.List(context.Background())
	assert.Error(t, err)
}

func TestSongRepo_ReadOnly(t *testing.T) {
	ctx := context.Background()
	srv := newSheetServer(t, sheetCSV)
	repo := NewSongRepo(Config{CSVURL: srv.URL, TTL: time.Minute})
	assert.True(t, repo.ReadOnly())

	_, err := repo.Create(ctx, validSong())
	assert.ErrorIs(t, err, repository.ErrReadOnly)
	_, err = repo.Update(ctx, 1, validSong())
	assert.ErrorIs(t, err, repository.ErrReadOnly)
	assert.ErrorIs(t, repo.Delete(ctx, 1), repository.ErrReadOnly)

	songs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, songs, 2)
}

func TestSongRepo_CreateViaWebhook(t *testing.T) {
	ctx := context.Background()
	srv := newSheetServer(t, sheetCSV)

	var received model.SongInput
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"ok":true,"id":"3"}`))
	}))
	defer hook.Close()

	repo := NewSongRepo(Config{CSVURL: srv.URL, WebhookURL: hook.URL, TTL: time.Hour})
	assert.False(t, repo.ReadOnly())

	_, err := repo.List(ctx)
	require.NoError(t, err)

	created, err := repo.Create(ctx, validSong())
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "Nueva", created.SongName)
	assert.Equal(t, validSong(), received)

	// cache was invalidated, so the next read refetches despite the long ttl
	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), srv.fetches.Load())

	// update and delete stay unsupported with a webhook
	_, err = repo.Update(ctx, 1, validSong())
	assert.ErrorIs(t, err, repository.ErrReadOnly)
	assert.ErrorIs(t, repo.Delete(ctx, 1), repository.ErrReadOnly)
}

func TestSongRepo_CreateWebhookWithoutID(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))
	defer hook.Close()

	repo := NewSongRepo(Config{CSVURL: "http://unused.invalid", WebhookURL: hook.URL, TTL: time.Minute})
	created, err := repo.Create(context.Background(), validSong())
	require.NoError(t, err)
	assert.Zero(t, created.ID)
}

func TestSongRepo_CreateWebhookFailure(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer hook.Close()

	repo := NewSongRepo(Config{CSVURL: "http://unused.invalid", WebhookURL: hook.URL, TTL: time.Minute})
	_, err := repo.Create(context.Background(), validSong())
	assert.ErrorIs(t, err, repository.ErrUpstream)
}
