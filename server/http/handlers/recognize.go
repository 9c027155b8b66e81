package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"numunit-service/internal/annotate"
	"numunit-service/internal/config"
	"numunit-service/internal/fileio"
	"numunit-service/internal/middleware"
	"numunit-service/internal/numberunit"
	"numunit-service/internal/recognizer"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	cfg    config.Config
	rec    *recognizer.Recognizer
	logger zerolog.Logger
}

func New(cfg config.Config, rec *recognizer.Recognizer, logger zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, rec: rec, logger: logger}
}

func (h *Handler) log(r *http.Request) zerolog.Logger {
	return h.logger.With().Str("rid", middleware.GetRequestID(r)).Logger()
}

// culture: явная культура из запроса, иначе Accept-Language, иначе дефолт.
func (h *Handler) culture(r *http.Request, requested string) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		return h.rec.Negotiate(al)
	}
	return h.rec.DefaultCulture()
}

// Cultures отдаёт список поддерживаемых культур.
func (h *Handler) Cultures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default":  h.rec.DefaultCulture(),
		"cultures": h.rec.Cultures(),
	})
}

type recognizeRequest struct {
	Text    string   `json:"text"`
	Culture string   `json:"culture"`
	Kinds   []string `json:"kinds"`
}

// Recognize: POST /recognize {"text", "culture"?, "kinds"?}.
func (h *Handler) Recognize(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	var req recognizeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if !errors.As(err, &tooBig) {
			err = badRequest("invalid json: %v", err)
		}
		writeError(w, log, err)
		return
	}
	kinds, err := numberunit.ParseKinds(req.Kinds...)
	if err != nil {
		writeError(w, log, err)
		return
	}
	res, err := h.rec.Recognize(r.Context(), req.Text, h.culture(r, req.Culture), kinds...)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RecognizeTable: POST /recognize/table, multipart с полем file (csv/xls/xlsx).
func (h *Handler) RecognizeTable(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.log(r)

	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes()); err != nil {
		var tooBig *http.MaxBytesError
		if !errors.As(err, &tooBig) {
			err = badRequest("bad multipart form: %v", err)
		}
		writeError(w, log, err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, log, badRequest("missing file: %v", err))
		return
	}
	defer file.Close()

	format := strings.ToLower(strings.TrimSpace(r.FormValue("format")))
	if format != "" && format != "json" && format != "xlsx" {
		writeError(w, log, badRequest("unknown format %q", format))
		return
	}
	kinds, err := numberunit.ParseKinds(r.MultipartForm.Value["kinds"]...)
	if err != nil {
		writeError(w, log, err)
		return
	}

	tbl, err := fileio.ReadTable(file, header.Filename, atoi(r.FormValue("header_row"), 1))
	if err != nil {
		if !errors.Is(err, fileio.ErrUnsupported) && !errors.Is(err, fileio.ErrHeaderRow) {
			err = badRequest("failed to read %s: %v", header.Filename, err)
		}
		writeError(w, log, err)
		return
	}

	rep, err := annotate.Annotate(r.Context(), h.rec, tbl, annotate.Options{
		Culture: h.culture(r, r.FormValue("culture")),
		Kinds:   kinds,
		Columns: r.FormValue("columns"),
	})
	if err != nil {
		writeError(w, log, err)
		return
	}

	log.Info().
		Str("file", header.Filename).
		Str("culture", rep.Culture).
		Int("rows", rep.Rows).
		Int("cells", len(rep.Cells)).
		Dur("elapsed", time.Since(start)).
		Msg("table recognized")

	if format != "xlsx" {
		writeJSON(w, http.StatusOK, rep)
		return
	}
	var buf bytes.Buffer
	if err := annotate.WriteXLSX(&buf, rep); err != nil {
		writeError(w, log, err)
		return
	}
	name := strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)) + "-units.xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, &buf); err != nil {
		log.Error().Err(err).Msg("write xlsx")
	}
}
