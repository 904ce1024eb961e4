// Package platform is the outbound client for the aggregator platform
// API: model catalog, model schemas, run requests, jobs, and the current
// authenticated user.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/config"
	"genhub/services/web-frontend/internal/domain/model"
	"genhub/services/web-frontend/internal/domain/run"
	"genhub/services/web-frontend/internal/domain/user"
	"genhub/services/web-frontend/internal/infrastructure/metrics"
)

// ModelList is the catalog response shape.
type ModelList struct {
	Items []model.Model `json:"items"`
	Total int           `json:"total"`
}

// Client talks to the platform API.
type Client struct {
	cfg        *config.Config
	httpClient *resty.Client
	log        zerolog.Logger
}

var _ run.Runner = (*Client)(nil)

// NewClient creates a platform API client.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.APIBase).
		SetTimeout(cfg.PlatformTimeout).
		SetHeader("User-Agent", "GenHub-Web-Frontend/1.0")

	return &Client{
		cfg:        cfg,
		httpClient: client,
		log:        log.With().Str("component", "platform-client").Logger(),
	}
}

// ListModels fetches the catalog, optionally filtered by search query and
// category.
func (c *Client) ListModels(ctx context.Context, q, category string) (*ModelList, error) {
	started := time.Now()
	params := map[string]string{}
	if q != "" {
		params["q"] = q
	}
	if category != "" {
		params["category"] = category
	}

	var result ModelList
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&result).
		Get("/api/v1/models")
	c.observe("list_models", resp, err, started)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list models: unexpected status %d", resp.StatusCode())
	}
	return &result, nil
}

// GetModel fetches a model schema. On any failure it falls back to a
// minimal stub so the page still renders.
func (c *Client) GetModel(ctx context.Context, id string) *model.Model {
	started := time.Now()
	var result model.Model
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/v1/models/" + id)
	c.observe("get_model", resp, err, started)
	if err != nil || resp.IsError() {
		c.log.Warn().Str("model", id).Err(err).Msg("model fetch failed, using stub")
		return model.Stub(id)
	}
	if result.ID == "" {
		result.ID = id
	}
	return &result
}

// Run issues the single POST that starts a generation job. A non-success
// status is surfaced as a RequestError carrying the response body as its
// message.
func (c *Client) Run(ctx context.Context, modelID string, payload map[string]any) (*run.Result, error) {
	started := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/api/v1/models/" + modelID + "/run")
	c.observe("run", resp, err, started)
	if err != nil {
		return nil, fmt.Errorf("run model %s: %w", modelID, err)
	}
	if resp.IsError() {
		return nil, &run.RequestError{
			StatusCode: resp.StatusCode(),
			Message:    messageFromBody(resp.Body(), resp.StatusCode()),
		}
	}

	var result run.Result
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("run model %s: decode response: %w", modelID, err)
	}
	return &result, nil
}

// GetJob fetches the raw job record. Informational only.
func (c *Client) GetJob(ctx context.Context, jobID string) (json.RawMessage, error) {
	started := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get("/api/v1/jobs/" + jobID)
	c.observe("get_job", resp, err, started)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", jobID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get job %s: unexpected status %d", jobID, resp.StatusCode())
	}
	return json.RawMessage(resp.Body()), nil
}

// CurrentUser resolves the authenticated user by forwarding the browser's
// cookies to the platform's auth endpoint. A nil user with nil error means
// not authenticated.
func (c *Client) CurrentUser(ctx context.Context, cookieHeader string) (*user.User, error) {
	started := time.Now()
	req := c.httpClient.R().SetContext(ctx)
	if cookieHeader != "" {
		req.SetHeader("Cookie", cookieHeader)
	}

	var result user.User
	resp, err := req.SetResult(&result).Get("/api/v1/auth/me")
	c.observe("auth_me", resp, err, started)
	if err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch current user: unexpected status %d", resp.StatusCode())
	}
	if result.ID == "" {
		return nil, nil
	}
	return &result, nil
}

func (c *Client) observe(operation string, resp *resty.Response, err error, started time.Time) {
	status := "error"
	if err == nil && resp != nil {
		status = fmt.Sprintf("%d", resp.StatusCode())
	}
	metrics.PlatformCallDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// messageFromBody extracts a human-readable error message from a platform
// response body: a string detail/error/message field of a JSON object, a
// bare JSON string, the raw text, or a generic status fallback.
func messageFromBody(body []byte, statusCode int) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Sprintf("HTTP %d", statusCode)
	}

	var asObject map[string]any
	if err := json.Unmarshal(body, &asObject); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if msg, ok := asObject[key].(string); ok && msg != "" {
				return msg
			}
		}
		return trimmed
	}

	var asString string
	if err := json.Unmarshal(body, &asString); err == nil && asString != "" {
		return asString
	}
	return trimmed
}
