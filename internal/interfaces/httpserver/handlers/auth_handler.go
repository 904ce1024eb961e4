package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/session"
	"genhub/services/web-frontend/internal/domain/user"
	"genhub/services/web-frontend/internal/infrastructure/platform"
)

// AuthHandler bridges the browser to the platform's auth service. The
// front-end implements no authentication itself: login and logout are
// redirects, and /auth/me is proxied with the browser's cookies.
type AuthHandler struct {
	cfg    *config.Config
	client *platform.Client
	users  *session.Store
	log    zerolog.Logger
}

func NewAuthHandler(cfg *config.Config, client *platform.Client, users *session.Store, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		client: client,
		users:  users,
		log:    log.With().Str("component", "auth-handler").Logger(),
	}
}

// Me returns the current platform user, or 200 with null when anonymous.
func (h *AuthHandler) Me(c *gin.Context) {
	u := h.resolveUser(c)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Login redirects the browser to the platform's OAuth entry for a provider.
func (h *AuthHandler) Login(c *gin.Context) {
	provider := c.Param("provider")
	c.Redirect(http.StatusFound, h.cfg.OAuthLoginURL(provider))
}

// Logout resets the cached user and redirects to the platform logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.users.Reset(formSessionID(c))
	c.Redirect(http.StatusFound, h.cfg.LogoutURL())
}

// resolveUser returns the cached user for this browser session, fetching
// from the platform on a miss. Set happens only here (successful fetch)
// and Reset only on logout.
func (h *AuthHandler) resolveUser(c *gin.Context) *user.User {
	return resolveUser(c, h.client, h.users, h.log)
}

func resolveUser(c *gin.Context, client *platform.Client, users *session.Store, log zerolog.Logger) *user.User {
	sessionID := formSessionID(c)
	if u := users.Get(sessionID); u != nil {
		return u
	}
	u, err := client.CurrentUser(c.Request.Context(), c.GetHeader("Cookie"))
	if err != nil {
		log.Warn().Err(err).Msg("current user fetch failed")
		return nil
	}
	if u != nil {
		users.Set(sessionID, u)
	}
	return u
}
