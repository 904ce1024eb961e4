package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/run"
	"genhub/services/web-frontend/internal/domain/session"
	"genhub/services/web-frontend/internal/domain/upload"
	"genhub/services/web-frontend/internal/infrastructure/platform"
	"genhub/services/web-frontend/internal/interfaces/httpserver/requests"
	"genhub/services/web-frontend/internal/interfaces/httpserver/responses"
	"genhub/services/web-frontend/internal/utils/platformerrors"
)

// FormHandler drives the submission flow: gate, validate, forward the run
// request to the platform, and report progress until a terminal state.
type FormHandler struct {
	cfg     *config.Config
	client  *platform.Client
	uploads *upload.Store
	runs    *run.Controller
	users   *session.Store
	log     zerolog.Logger
}

func NewFormHandler(cfg *config.Config, client *platform.Client, uploads *upload.Store, runs *run.Controller, users *session.Store, log zerolog.Logger) *FormHandler {
	return &FormHandler{
		cfg:     cfg,
		client:  client,
		uploads: uploads,
		runs:    runs,
		users:   users,
		log:     log.With().Str("component", "form-handler").Logger(),
	}
}

// Submit starts a generation run for a model.
func (h *FormHandler) Submit(c *gin.Context) {
	modelID := c.Param("id")

	var req requests.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body: "+err.Error())
		return
	}

	m := h.client.GetModel(c.Request.Context(), modelID)
	u := resolveUser(c, h.client, h.users, h.log)

	key := formKey(formSessionID(c), modelID)
	fileCount := h.uploads.Count(key)

	sub, err := h.runs.Submit(c.Request.Context(), u, m, key, req.Values, req.Sliders, fileCount, req.Count)
	if err != nil {
		responses.HandleError(c, err, "submission rejected")
		return
	}

	c.JSON(http.StatusAccepted, sub.Snapshot())
}

// Status reports the current state, simulated progress, and result of a
// submission.
func (h *FormHandler) Status(c *gin.Context) {
	sub, ok := h.runs.Get(c.Param("submission"))
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "submission not found")
		return
	}
	c.JSON(http.StatusOK, sub.Snapshot())
}

// Cancel aborts an in-flight submission.
func (h *FormHandler) Cancel(c *gin.Context) {
	h.runs.Cancel(c.Param("submission"))
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// Teardown releases everything a form instance owns: its upload session
// with all preview handles, and whatever submission is still in flight.
// The browser calls this on page unload.
func (h *FormHandler) Teardown(c *gin.Context) {
	key := formKey(formSessionID(c), c.Param("id"))
	h.runs.TeardownForm(key)
	h.uploads.Teardown(key)
	c.Status(http.StatusNoContent)
}

// Job proxies the informational job record from the platform.
func (h *FormHandler) Job(c *gin.Context) {
	raw, err := h.client.GetJob(c.Request.Context(), c.Param("job"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeExternal, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
