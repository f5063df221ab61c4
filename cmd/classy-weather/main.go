package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	httpapi "github.com/i474232898/classy-weather/internal/api/http"
	"github.com/i474232898/classy-weather/internal/config"
	"github.com/i474232898/classy-weather/internal/logging"
	"github.com/i474232898/classy-weather/internal/scheduler"
	"github.com/i474232898/classy-weather/internal/store"
	"github.com/i474232898/classy-weather/internal/weather"
	"github.com/i474232898/classy-weather/internal/weather/providers"
)

func main() {
	if err := run(); err != nil {
		slog.Error("classy-weather stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the service and blocks until shutdown. Deferred cleanup has run
// by the time it returns.
func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistence bridge for the last used location.
	prefs, err := store.Open(ctx, store.Options{
		Backend:     cfg.PrefsBackend,
		FilePath:    cfg.PrefsFile,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
	})
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer func() {
		if err := prefs.Close(); err != nil {
			logger.Warn("could not close preferences", "error", err)
		}
	}()

	// Shared HTTP client for outbound collaborator calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	geocoder := providers.NewRateLimitedGeocoder(
		providers.NewOpenMeteoGeocoder(httpClient, cfg.GeocodingURL),
		cfg.GeocoderRPS, cfg.GeocoderBurst,
	)
	forecast := providers.NewOpenMeteoForecast(httpClient, cfg.ForecastURL)
	resolver := weather.NewStagedResolver(geocoder, forecast, logger)

	ctrl := weather.NewController(resolver, prefs,
		weather.WithPreferenceKey(cfg.PrefsKey),
		weather.WithLogger(logger),
	)
	defer ctrl.Close()

	sched := scheduler.New(cfg.RefreshInterval, ctrl, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(ctrl)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "port", cfg.Port, "backend", cfg.PrefsBackend)
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
