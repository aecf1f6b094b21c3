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

	"golang.org/x/sync/errgroup"

	"catalogdash/internal/api"
	"catalogdash/internal/cache"
	"catalogdash/internal/config"
	"catalogdash/internal/engine"
	"catalogdash/internal/log"
	"catalogdash/internal/models"
	"catalogdash/internal/source"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.New(log.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Component: log.ComponentApp})

	var src engine.Source
	if cfg.ProductsFile != "" {
		src = source.NewFile(cfg.ProductsFile)
		logger.Info().Str(log.FieldSource, cfg.ProductsFile).Msg("using product file")
	} else {
		src = source.NewClient(cfg.ProductsURL, logger)
		logger.Info().Str(log.FieldSource, cfg.ProductsURL).Msg("using product API")
	}

	loader := engine.NewLoader(src, cfg.FetchTimeout, logger)

	pages := cache.NewLRUCache[[]models.Product](cfg.CacheSize, cfg.CacheTTL)
	caches := cache.NewManager(logger)
	caches.Register(pages)
	caches.StartCleanup(time.Minute)
	defer caches.Stop()

	// The API is live immediately; data routes answer 503 until the first load resolves.
	h := api.NewHandler(loader,
		api.WithPageSize(cfg.PageSize),
		api.WithPageCache(pages),
		api.WithRefreshRate(cfg.RefreshRate),
		api.WithLogger(logger.WithComponent(log.ComponentHTTP)),
	)
	e := api.NewServer(h, logger, cfg.CORSOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One fetch at startup, in the background.
	go func() {
		st := loader.Load(ctx)
		logger.Info().
			Int(log.FieldProducts, len(st.Products)).
			Str(log.FieldOperation, log.OpStartup).
			Msg("initial load finished")
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr()).Msg("server ready (data loading in background)")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Str(log.FieldOperation, log.OpShutdown).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}
