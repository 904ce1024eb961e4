//go:build wireinject

package main

import (
	"genhub/services/web-frontend/internal/domain"
	"genhub/services/web-frontend/internal/infrastructure"
	"genhub/services/web-frontend/internal/interfaces"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
