package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/run"
	"genhub/services/web-frontend/internal/domain/session"
	"genhub/services/web-frontend/internal/domain/upload"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	ProvideSessionStore,
	ProvideUploadStore,
	ProvideRunController,
)

func ProvideSessionStore(cfg *config.Config) *session.Store {
	return session.NewStore(cfg.UploadSessionTTL)
}

func ProvideUploadStore(cfg *config.Config, log zerolog.Logger) *upload.Store {
	return upload.NewStore(cfg.MaxUploadBytes, cfg.UploadSessionTTL, log)
}

func ProvideRunController(cfg *config.Config, runner run.Runner, log zerolog.Logger) *run.Controller {
	return run.NewController(runner, cfg.RunTimeout, log)
}
