package main

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/infrastructure/crontab"
	"genhub/services/web-frontend/internal/infrastructure/logger"
	"genhub/services/web-frontend/internal/infrastructure/observability"
	"genhub/services/web-frontend/internal/interfaces/httpserver"

	_ "net/http/pprof"
)

// Application bundles the long-running pieces wired together at startup.
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
}

func init() {
	log := logger.GetLogger()
	if _, err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
}

func (application *Application) Start() {
	background := context.Background()
	ctx, cancel := context.WithCancel(background)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := http.ListenAndServe("0.0.0.0:6060", nil)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.httpServer.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func main() {
	ctx := context.Background()
	log := logger.GetLogger()

	cfg := config.GetGlobal()
	if cfg == nil {
		log.Fatal().Msg("config not loaded")
	}

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	application.Start()
}
