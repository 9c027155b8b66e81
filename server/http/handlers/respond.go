package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"numunit-service/internal/annotate"
	"numunit-service/internal/fileio"
	"numunit-service/internal/numberunit"
	"numunit-service/internal/recognizer"
)

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf maps domain errors to HTTP codes; everything unknown is 500.
func statusOf(err error) int {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, fileio.ErrUnsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, errBadRequest),
		errors.Is(err, recognizer.ErrEmptyText),
		errors.Is(err, recognizer.ErrTextTooLong),
		errors.Is(err, recognizer.ErrUnknownCulture),
		errors.Is(err, numberunit.ErrUnknownKind),
		errors.Is(err, annotate.ErrNoColumns),
		errors.Is(err, fileio.ErrHeaderRow):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError отвечает {"error": "..."}; 5xx пишем в лог, текст наружу не отдаём.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	status := statusOf(err)
	msg := err.Error()
	switch {
	case status == http.StatusServiceUnavailable:
		msg = "request timed out"
	case status >= 500:
		log.Error().Err(err).Msg("request failed")
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
