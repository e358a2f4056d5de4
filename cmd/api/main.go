package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-webhook-bridge/config"
	httpHandler "payment-webhook-bridge/internal/adapter/http/handler"
	"payment-webhook-bridge/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout    = 10 * time.Second
	eventPurgeInterval = time.Hour
	openAPISpecPath    = "docs/api/openapi.yaml"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("PWB_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("gateway", cfg.Gateway.ID).
		Str("gateway_mode", cfg.Gateway.Mode()).
		Str("storage", cfg.Database.Driver).
		Bool("redis", cfg.Redis.Enabled).
		Msg("Starting Payment Webhook Bridge")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Bridge stopped with error")
	}
	log.Info().Msg("Server exited")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	app := buildApplication(cfg, st, log)

	if spec, err := os.ReadFile(openAPISpecPath); err == nil {
		app.deps.OpenAPISpec = spec
		log.Info().Str("path", openAPISpecPath).Msg("API document served at /docs")
	} else {
		log.Warn().Err(err).Msg("API document not found, /docs disabled")
	}

	router := httpHandler.SetupRouter(app.deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		return nil
	})

	if app.purger != nil {
		g.Go(func() error {
			purgeLoop(ctx, app.purger, eventPurgeInterval, log)
			return nil
		})
	}

	return g.Wait()
}

// purgeLoop drops expired webhook claims until ctx is done.
func purgeLoop(ctx context.Context, p eventPurger, every time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("Webhook event purge failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("Expired webhook events purged")
			}
		}
	}
}
