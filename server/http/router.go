package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"numunit-service/internal/config"
	"numunit-service/internal/middleware"
	"numunit-service/internal/recognizer"
	"numunit-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, rec *recognizer.Recognizer) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit -> timeout
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(cfg.MaxUploadBytes()))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	h := handlers.New(cfg, rec, logger)

	r.Get("/health", handlers.Health)
	r.Get("/cultures", h.Cultures)

	r.Post("/recognize", h.Recognize)
	r.Post("/recognize/table", h.RecognizeTable)

	return r
}
