package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"numunit-service/internal/config"
	"numunit-service/internal/recognizer"
	"numunit-service/internal/resources"
	serverhttp "numunit-service/server/http"
)

func main() {
	cfg := config.MustLoad()
	logger := config.SetupLogger(cfg)

	cat, err := resources.Embedded()
	if err != nil {
		logger.Fatal().Err(err).Msg("load locale tables")
	}
	// все регулярки компилируются здесь, один раз
	rec, err := recognizer.New(cat, recognizer.Options{
		DefaultCulture:  cfg.DefaultCulture,
		Cultures:        cfg.Cultures,
		EnglishFallback: cfg.EnglishFallback,
		MatchTimeout:    cfg.MatchTimeout,
		MaxTextLength:   cfg.MaxTextLength,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("build recognizer")
	}

	r := serverhttp.NewRouter(cfg, logger, rec)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}
	logger.Info().
		Str("addr", cfg.Addr()).
		Strs("cultures", rec.Codes()).
		Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("bye")
}
