// Package sheet serves songs from a published spreadsheet CSV export.
// Reads go through a TTL cache; inserts are forwarded to an optional
// append webhook and updates or deletes are never supported.
package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/domain/repository"
	"github.com/kawabatas/songbook/internal/util/clock"
)

type Config struct {
	CSVURL     string
	WebhookURL string // empty means read-only
	TTL        time.Duration
	Timeout    time.Duration
}

type SongRepo struct {
	client     *resty.Client
	csvURL     string
	webhookURL string
	cache      *Cache
}

var _ repository.SongRepository = (*SongRepo)(nil)

func NewSongRepo(cfg Config) *SongRepo {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SongRepo{
		client:     resty.New().SetTimeout(timeout),
		csvURL:     cfg.CSVURL,
		webhookURL: cfg.WebhookURL,
		cache:      NewCache(cfg.TTL),
	}
}

// ReadOnly reports whether inserts are rejected.
func (r *SongRepo) ReadOnly() bool { return r.webhookURL == "" }

func (r *SongRepo) List(ctx context.Context) ([]model.Song, error) {
	songs, err := r.songs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Song, len(songs))
	copy(out, songs)
	return out, nil
}

func (r *SongRepo) Get(ctx context.Context, id int64) (model.Song, error) {
	songs, err := r.songs(ctx)
	if err != nil {
		return model.Song{}, err
	}
	for _, s := range songs {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Song{}, repository.ErrNotFound
}

func (r *SongRepo) Search(ctx context.Context, query string) ([]model.Song, error) {
	songs, err := r.songs(ctx)
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

// webhookResponse accepts the id as a JSON number or string.
type webhookResponse struct {
	ID json.RawMessage `json:"id"`
}

func (w webhookResponse) id() int64 {
	raw := strings.Trim(string(w.ID), `"`)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Create forwards the song to the webhook and invalidates the cache. The
// returned song echoes the input plus whatever id the webhook reported.
func (r *SongRepo) Create(ctx context.Context, in model.SongInput) (model.Song, error) {
	if r.ReadOnly() {
		return model.Song{}, repository.ErrReadOnly
	}
	in = in.Normalized()
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		Post(r.webhookURL)
	if err != nil {
		return model.Song{}, fmt.Errorf("%w: %v", repository.ErrUpstream, err)
	}
	if resp.IsError() {
		return model.Song{}, fmt.Errorf("%w: webhook returned status %d", repository.ErrUpstream, resp.StatusCode())
	}
	r.cache.Invalidate()

	var wr webhookResponse
	if err := json.Unmarshal(resp.Body(), &wr); err != nil {
		slog.DebugContext(ctx, "webhook response is not JSON", slog.String("body", resp.String()))
	}
	return in.Song(wr.id(), clock.Now()), nil
}

func (r *SongRepo) Update(ctx context.Context, id int64, in model.SongInput) (model.Song, error) {
	return model.Song{}, repository.ErrReadOnly
}

func (r *SongRepo) Delete(ctx context.Context, id int64) error {
	return repository.ErrReadOnly
}

// Refresh drops the cache and fetches the sheet again.
func (r *SongRepo) Refresh(ctx context.Context) error {
	r.cache.Invalidate()
	_, err := r.songs(ctx)
	return err
}

func (r *SongRepo) songs(ctx context.Context) ([]model.Song, error) {
	if songs, ok := r.cache.Fresh(); ok {
		return songs, nil
	}
	songs, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Replace(songs)
	return songs, nil
}

func (r *SongRepo) fetch(ctx context.Context) ([]model.Song, error) {
	resp, err := r.client.R().SetContext(ctx).Get(r.csvURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch sheet: unexpected status %d", resp.StatusCode())
	}
	songs := songsFromRows(ParseCSV(resp.String()))
	slog.DebugContext(ctx, "sheet fetched", slog.Int("songs", len(songs)))
	return songs, nil
}
