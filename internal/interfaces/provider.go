package interfaces

import (
	"github.com/google/wire"

	"genhub/services/web-frontend/internal/interfaces/httpserver"
	"genhub/services/web-frontend/internal/interfaces/httpserver/handlers"
)

// InterfacesProvider provides the HTTP handlers and server.
var InterfacesProvider = wire.NewSet(
	handlers.NewProvider,
	httpserver.New,
)
