package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/run"
	"genhub/services/web-frontend/internal/infrastructure/crontab"
	"genhub/services/web-frontend/internal/infrastructure/logger"
	"genhub/services/web-frontend/internal/infrastructure/platform"
)

// InfrastructureProvider provides config, logging, the platform client,
// and the sweep scheduler.
var InfrastructureProvider = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	platform.NewClient,
	crontab.NewCrontab,
	wire.Bind(new(run.Runner), new(*platform.Client)),
)

func ProvideConfig() (*config.Config, error) {
	if cfg := config.GetGlobal(); cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

func ProvideLogger(cfg *config.Config) zerolog.Logger {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return logger.GetLogger()
	}
	return log
}
