package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/run"
	"genhub/services/web-frontend/internal/domain/session"
	"genhub/services/web-frontend/internal/domain/upload"
	"genhub/services/web-frontend/internal/infrastructure/platform"
)

// Provider aggregates all HTTP handlers for route registration.
type Provider struct {
	Pages  *PageHandler
	Form   *FormHandler
	Upload *UploadHandler
	Auth   *AuthHandler
}

// NewProvider constructs all handlers.
func NewProvider(cfg *config.Config, client *platform.Client, uploads *upload.Store, runs *run.Controller, users *session.Store, log zerolog.Logger) *Provider {
	return &Provider{
		Pages:  NewPageHandler(cfg, client, users, log),
		Form:   NewFormHandler(cfg, client, uploads, runs, users, log),
		Upload: NewUploadHandler(cfg, client, uploads, log),
		Auth:   NewAuthHandler(cfg, client, users, log),
	}
}

const formSessionCookie = "gh_form_session"

// formSessionID returns the browser's form session id, minting and setting
// the cookie on first contact. Everything a form owns (uploads, in-flight
// submission) is keyed by this id plus the model id.
func formSessionID(c *gin.Context) string {
	if id, err := c.Cookie(formSessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(formSessionCookie, id, 0, "/", "", false, true)
	return id
}

// formKey scopes per-form state to one model within one browser session.
func formKey(sessionID, modelID string) string {
	return sessionID + "." + modelID
}
