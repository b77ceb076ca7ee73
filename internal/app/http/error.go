package apphttp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kawabatas/songbook/internal/domain/model"
	"github.com/kawabatas/songbook/internal/domain/repository"
	"github.com/kawabatas/songbook/internal/httpx"
)

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

// writeStoreError maps store errors to statuses. failure is the message used
// for unexpected errors, e.g. "Failed to fetch songs".
func writeStoreError(w http.ResponseWriter, r *http.Request, failure string, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, model.ErrValidation.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Song not found")
	case errors.Is(err, repository.ErrReadOnly):
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "Songs are read-only in this deployment")
	case errors.Is(err, repository.ErrUpstream):
		logStoreError(r, failure, err)
		writeError(w, http.StatusBadGateway, "Failed to forward song to the sheet")
	default:
		logStoreError(r, failure, err)
		writeError(w, http.StatusInternalServerError, failure)
	}
}

func logStoreError(r *http.Request, failure string, err error) {
	slog.ErrorContext(r.Context(), failure,
		slog.Any("error", err),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", httpx.RequestIDFromCtx(r.Context())),
	)
}
