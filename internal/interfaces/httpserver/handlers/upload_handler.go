package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/upload"
	"genhub/services/web-frontend/internal/infrastructure/metrics"
	"genhub/services/web-frontend/internal/infrastructure/platform"
	"genhub/services/web-frontend/internal/interfaces/httpserver/responses"
	"genhub/services/web-frontend/internal/utils/platformerrors"
)

// UploadHandler exposes the upload/preview subsystem over HTTP: the
// browser posts dropped or picked files here and renders the returned
// preview URLs.
type UploadHandler struct {
	cfg     *config.Config
	client  *platform.Client
	uploads *upload.Store
	log     zerolog.Logger
}

func NewUploadHandler(cfg *config.Config, client *platform.Client, uploads *upload.Store, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		cfg:     cfg,
		client:  client,
		uploads: uploads,
		log:     log.With().Str("component", "upload-handler").Logger(),
	}
}

// Add accepts multipart files for a model's form, filters them by the
// model's accepted media type, and returns the resulting preview list.
func (h *UploadHandler) Add(c *gin.Context) {
	modelID := c.Param("id")
	m := h.client.GetModel(c.Request.Context(), modelID)

	mpForm, err := c.MultipartForm()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "multipart form expected")
		return
	}

	var candidates []upload.File
	for _, header := range mpForm.File["input_files"] {
		f, err := header.Open()
		if err != nil {
			h.log.Warn().Err(err).Str("file", header.Filename).Msg("open multipart file")
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, h.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil {
			h.log.Warn().Err(err).Str("file", header.Filename).Msg("read multipart file")
			continue
		}
		candidates = append(candidates, upload.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	key := formKey(formSessionID(c), modelID)
	result, err := h.uploads.Add(key, m.From, m.FileLimit(), candidates)
	if err != nil {
		responses.HandleError(c, err, "upload failed")
		return
	}

	metrics.UploadsTotal.WithLabelValues(string(m.From), "accepted").Add(float64(result.Accepted))
	metrics.UploadsTotal.WithLabelValues(string(m.From), "rejected").Add(float64(result.Rejected))

	c.JSON(http.StatusOK, result)
}

// Remove deletes the retained file at a position and releases its preview.
func (h *UploadHandler) Remove(c *gin.Context) {
	modelID := c.Param("id")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "index must be an integer")
		return
	}

	key := formKey(formSessionID(c), modelID)
	if err := h.uploads.Remove(key, index); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"previews": h.uploads.Previews(key)})
}

// Preview streams a retained file's bytes for the transient preview URL.
func (h *UploadHandler) Preview(c *gin.Context) {
	sessionKey := c.Param("session")
	previewID := c.Param("preview")

	f, ok := h.uploads.Open(sessionKey, previewID)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "preview not found")
		return
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, f.Data)
}
