package apphttp

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/kawabatas/songbook/internal/app/usecase"
	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/domain/repository"
	"github.com/kawabatas/songbook/internal/infra/datastore"
)

// Register wires API endpoints onto the provided mux.
func Register(mux *http.ServeMux, ds datastore.DataStore) {
	mux.HandleFunc("GET /healthz", healthz(ds)) // ストア接続も確認するため healthz

	svc := usecase.NewSongService(ds.Songs())
	mux.HandleFunc("GET /api/songs", listSongs(svc))
	mux.HandleFunc("GET /api/songs/{id}", getSong(svc))
	mux.HandleFunc("POST /api/songs", createSong(svc))
	mux.HandleFunc("PUT /api/songs/{id}", updateSong(svc))
	mux.HandleFunc("DELETE /api/songs/{id}", deleteSong(svc))
	mux.HandleFunc("GET /api/songs/search/{query}", searchSongs(svc))
}

type songResp struct {
	model.Song
	Message string `json:"message,omitempty"`
}

type messageResp struct {
	Message string `json:"message"`
}

func healthz(ds datastore.DataStore) http.HandlerFunc {
	type resp struct {
		Status string `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ds.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, resp{Status: "ng"})
			return
		}
		writeJSON(w, http.StatusOK, resp{Status: "ok"})
	}
}

func listSongs(svc *usecase.SongService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songs, err := svc.List(r.Context())
		if err != nil {
			writeStoreError(w, r, "Failed to fetch songs", err)
			return
		}
		writeJSON(w, http.StatusOK, songs)
	}
}

func getSong(svc *usecase.SongService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeStoreError(w, r, "", repository.ErrNotFound)
			return
		}
		song, err := svc.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, "Failed to fetch song", err)
			return
		}
		writeJSON(w, http.StatusOK, song)
	}
}

func createSong(svc *usecase.SongService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeSongInput(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		song, err := svc.Create(r.Context(), in)
		if err != nil {
			writeStoreError(w, r, "Failed to add song", err)
			return
		}
		writeJSON(w, http.StatusCreated, songResp{Song: song, Message: "Song added successfully"})
	}
}

func updateSong(svc *usecase.SongService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeStoreError(w, r, "", repository.ErrNotFound)
			return
		}
		in, err := decodeSongInput(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		song, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeStoreError(w, r, "Failed to update song", err)
			return
		}
		writeJSON(w, http.StatusOK, songResp{Song: song, Message: "Song updated successfully"})
	}
}

func deleteSong(svc *usecase.SongService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeStoreError(w, r, "", repository.ErrNotFound)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeStoreError(w, r, "Failed to delete song", err)
			return
		}
		writeJSON(w, http.StatusOK, messageResp{Message: "Song deleted successfully"})
	}
}

func searchSongs(svc *usecase.SongService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songs, err := svc.Search(r.Context(), r.PathValue("query"))
		if err != nil {
			writeStoreError(w, r, "Failed to search songs", err)
			return
		}
		writeJSON(w, http.StatusOK, songs)
	}
}

// pathID parses the {id} segment; anything that is not an integer cannot name a song.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// decodeSongInput accepts a JSON body or an urlencoded form.
func decodeSongInput(r *http.Request) (model.SongInput, error) {
	var in model.SongInput
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return in, err
		}
		in = model.SongInput{
			SongName:      r.PostForm.Get("song_name"),
			ArtistName:    r.PostForm.Get("artist_name"),
			LyricsSpanish: r.PostForm.Get("lyrics_spanish"),
			YoutubeLink:   r.PostForm.Get("youtube_link"),
		}
		if v := r.PostForm.Get("lyrics_english"); v != "" {
			in.LyricsEnglish = &v
		}
		if v := r.PostForm.Get("lyrics_german"); v != "" {
			in.LyricsGerman = &v
		}
		return in, nil
	}
	err := json.NewDecoder(r.Body).Decode(&in)
	return in, err
}
