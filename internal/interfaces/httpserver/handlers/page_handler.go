package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/form"
	"genhub/services/web-frontend/internal/domain/model"
	"genhub/services/web-frontend/internal/domain/session"
	"genhub/services/web-frontend/internal/infrastructure/platform"
)

// PageHandler renders the server-side pages: landing, catalog, model
// detail with the interactive form, and the profile/balance placeholders.
type PageHandler struct {
	cfg    *config.Config
	client *platform.Client
	users  *session.Store
	log    zerolog.Logger
}

func NewPageHandler(cfg *config.Config, client *platform.Client, users *session.Store, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		cfg:    cfg,
		client: client,
		users:  users,
		log:    log.With().Str("component", "page-handler").Logger(),
	}
}

// controlView is the template-facing state of one form control.
type controlView struct {
	Field model.OptionField
	Kind  model.FieldKind
	Value any
	Min   float64
	Max   float64
	Step  float64
}

func controls(fields []model.OptionField) []controlView {
	out := make([]controlView, 0, len(fields))
	for _, f := range fields {
		out = append(out, controlView{
			Field: f,
			Kind:  f.Kind(),
			Value: f.InitialValue(),
			Min:   f.MinOr(0),
			Max:   f.MaxOr(100),
			Step:  f.StepOr(1),
		})
	}
	return out
}

// Landing renders the marketing page.
func (h *PageHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing.tmpl", gin.H{
		"Title": "GenHub — AI generation models",
		"User":  resolveUser(c, h.client, h.users, h.log),
	})
}

// Catalog renders the model catalog with optional search and category
// filters passed through to the platform.
func (h *PageHandler) Catalog(c *gin.Context) {
	q := c.Query("q")
	category := c.Query("category")

	list, err := h.client.ListModels(c.Request.Context(), q, category)
	if err != nil {
		h.log.Warn().Err(err).Msg("catalog fetch failed")
		list = &platform.ModelList{}
	}

	c.HTML(http.StatusOK, "catalog.tmpl", gin.H{
		"Title":    "Model catalog",
		"User":     resolveUser(c, h.client, h.users, h.log),
		"Items":    list.Items,
		"Total":    list.Total,
		"Query":    q,
		"Category": category,
	})
}

// ModelDetail renders a model page with its schema-generated form. A
// failed schema fetch falls back to a stub model so the page still loads.
func (h *PageHandler) ModelDetail(c *gin.Context) {
	m := h.client.GetModel(c.Request.Context(), c.Param("id"))
	for _, f := range m.Options {
		if !f.Kind().Known() {
			h.log.Warn().Str("model", m.ID).Str("field", f.Name).Str("type", f.Type).Msg("unrecognized field kind, skipping control")
		}
	}
	base, advanced := form.Partition(m.Options)

	c.HTML(http.StatusOK, "model.tmpl", gin.H{
		"Title":        m.Title,
		"User":         resolveUser(c, h.client, h.users, h.log),
		"Model":        m,
		"Base":         controls(base),
		"Advanced":     controls(advanced),
		"AcceptPrefix": m.From.AcceptPrefix(),
		"FileLimit":    m.FileLimit(),
		"MinCount":     form.MinGenerationCount,
		"MaxCount":     form.MaxGenerationCount,
	})
}

// Profile renders the account placeholder page.
func (h *PageHandler) Profile(c *gin.Context) {
	c.HTML(http.StatusOK, "profile.tmpl", gin.H{
		"Title": "Profile",
		"User":  resolveUser(c, h.client, h.users, h.log),
	})
}

// Balance renders the token balance placeholder page.
func (h *PageHandler) Balance(c *gin.Context) {
	c.HTML(http.StatusOK, "balance.tmpl", gin.H{
		"Title": "Balance",
		"User":  resolveUser(c, h.client, h.users, h.log),
	})
}
