package v1

import (
	"github.com/gin-gonic/gin"

	"genhub/services/web-frontend/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned API route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	// Form submission flow
	group.POST("/models/:id/run", r.handlers.Form.Submit)
	group.GET("/runs/:submission", r.handlers.Form.Status)
	group.POST("/runs/:submission/cancel", r.handlers.Form.Cancel)
	group.DELETE("/forms/:id", r.handlers.Form.Teardown)
	group.GET("/jobs/:job", r.handlers.Form.Job)

	// Upload/preview subsystem
	group.POST("/models/:id/uploads", r.handlers.Upload.Add)
	group.DELETE("/models/:id/uploads/:index", r.handlers.Upload.Remove)
	group.GET("/uploads/:session/:preview", r.handlers.Upload.Preview)

	// Auth bridge
	group.GET("/auth/me", r.handlers.Auth.Me)
}
