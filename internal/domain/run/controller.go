package run

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/domain/form"
	"genhub/services/web-frontend/internal/domain/model"
	"genhub/services/web-frontend/internal/domain/user"
	"genhub/services/web-frontend/internal/infrastructure/metrics"
	"genhub/services/web-frontend/internal/utils/platformerrors"
)

// Result is the platform's answer to a run request. Everything beyond
// ResultURL is informational.
type Result struct {
	ResultURL        string  `json:"result_url"`
	JobID            string  `json:"job_id,omitempty"`
	Status           string  `json:"status,omitempty"`
	TokensReserved   int64   `json:"tokens_reserved,omitempty"`
	EstimatedRubCost float64 `json:"estimated_rub_cost,omitempty"`
}

// RequestError carries a non-success platform response.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("run request failed with status %d: %s", e.StatusCode, e.Message)
}

// Runner issues the single POST to the platform run endpoint.
type Runner interface {
	Run(ctx context.Context, modelID string, payload map[string]any) (*Result, error)
}

// Status is a point-in-time snapshot of a submission.
type Status struct {
	ID        string `json:"id"`
	State     State  `json:"state"`
	Progress  int    `json:"progress"`
	ResultURL string `json:"result_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Submission tracks one run request from validation to its terminal state.
type Submission struct {
	ID      string
	ModelID string
	FormKey string

	mu         sync.Mutex
	state      State
	startedAt  time.Time
	settledAt  time.Time
	resultURL  string
	errMessage string
	cancel     context.CancelFunc
}

func (s *Submission) transition(target State) error {
	next, err := s.state.TransitionTo(target)
	if err != nil {
		return err
	}
	s.state = next
	if next.IsTerminal() {
		s.settledAt = time.Now()
	}
	return nil
}

// Snapshot returns the submission's current status.
func (s *Submission) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ID:        s.ID,
		State:     s.state,
		Progress:  s.progressLocked(),
		ResultURL: s.resultURL,
		Error:     s.errMessage,
	}
}

// progressLocked is the simulated, monotonically increasing progress
// readout. It carries no correctness guarantee: it is time-based UI
// feedback capped below 100 until the submission actually settles.
func (s *Submission) progressLocked() int {
	switch s.state {
	case StateSucceeded:
		return 100
	case StateIdle, StateValidating:
		return 0
	}
	elapsed := time.Since(s.startedAt).Seconds()
	p := 5 + int(elapsed*3)
	if p > 95 {
		p = 95
	}
	return p
}

// Controller owns all submissions and enforces one in-flight submission
// per form instance.
type Controller struct {
	runner  Runner
	timeout time.Duration
	log     zerolog.Logger

	mu          sync.Mutex
	submissions map[string]*Submission
	inflight    map[string]string
}

// NewController builds a Controller. timeout bounds each platform run call.
func NewController(runner Runner, timeout time.Duration, log zerolog.Logger) *Controller {
	return &Controller{
		runner:      runner,
		timeout:     timeout,
		log:         log.With().Str("component", "run-controller").Logger(),
		submissions: make(map[string]*Submission),
		inflight:    make(map[string]string),
	}
}

// Submit gates, validates, and launches a run request. Gating and
// validation failures return before any network call is made.
func (c *Controller) Submit(ctx context.Context, u *user.User, m *model.Model, formKey string, values map[string]any, sliders map[string]float64, fileCount, count int) (*Submission, error) {
	if u == nil {
		metrics.GatingRejectionsTotal.WithLabelValues("unauthenticated").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized, "authentication required", nil, "")
	}
	if !u.CanSubmit() {
		metrics.GatingRejectionsTotal.WithLabelValues("insufficient_balance").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypePaymentRequired, "insufficient balance", nil, "")
	}

	c.mu.Lock()
	if _, busy := c.inflight[formKey]; busy {
		c.mu.Unlock()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeConflict, "a submission is already in flight for this form", nil, "")
	}
	sub := &Submission{
		ID:      uuid.NewString(),
		ModelID: m.ID,
		FormKey: formKey,
		state:   StateIdle,
	}
	c.submissions[sub.ID] = sub
	c.inflight[formKey] = sub.ID
	c.mu.Unlock()

	sub.mu.Lock()
	if err := sub.transition(StateValidating); err != nil {
		sub.mu.Unlock()
		return nil, err
	}
	if err := form.Validate(m, values, sliders); err != nil {
		sub.state = StateFailed
		sub.errMessage = err.Error()
		sub.settledAt = time.Now()
		sub.mu.Unlock()
		c.clearInflight(formKey, sub.ID)
		metrics.SubmissionsTotal.WithLabelValues(m.ID, "validation_error").Inc()
		return sub, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, err.Error(), err, "")
	}
	if err := sub.transition(StateSubmitting); err != nil {
		sub.mu.Unlock()
		return nil, err
	}
	sub.startedAt = time.Now()

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	sub.cancel = cancel
	sub.mu.Unlock()

	payload := form.BuildPayload(m, values, sliders, fileCount, count, u.ID)

	go c.execute(runCtx, sub, payload)

	return sub, nil
}

func (c *Controller) execute(ctx context.Context, sub *Submission, payload map[string]any) {
	defer c.clearInflight(sub.FormKey, sub.ID)

	result, err := c.runner.Run(ctx, sub.ModelID, payload)

	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.cancel != nil {
		sub.cancel()
		sub.cancel = nil
	}
	if sub.state.IsTerminal() {
		return
	}

	if err != nil {
		sub.state = StateFailed
		sub.errMessage = errorMessage(err)
		sub.settledAt = time.Now()
		metrics.SubmissionsTotal.WithLabelValues(sub.ModelID, "failed").Inc()
		c.log.Warn().Str("submission", sub.ID).Str("model", sub.ModelID).Err(err).Msg("run failed")
		return
	}

	// A success response without a result URL is a legitimate pending
	// state, not an error: the result stays empty.
	sub.state = StateSucceeded
	if result != nil {
		sub.resultURL = result.ResultURL
	}
	sub.settledAt = time.Now()
	metrics.SubmissionsTotal.WithLabelValues(sub.ModelID, "succeeded").Inc()
}

func errorMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "generation request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "generation request cancelled"
	}
	return err.Error()
}

// Get returns a submission by id.
func (c *Controller) Get(id string) (*Submission, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub, ok := c.submissions[id]
	return sub, ok
}

// Cancel aborts an in-flight submission. Settled submissions are untouched.
func (c *Controller) Cancel(id string) {
	c.mu.Lock()
	sub, ok := c.submissions[id]
	c.mu.Unlock()
	if !ok {
		return
	}
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.state.IsTerminal() {
		return
	}
	if sub.cancel != nil {
		sub.cancel()
	}
}

// TeardownForm cancels whatever the form still has in flight. Called when
// the owning form session goes away.
func (c *Controller) TeardownForm(formKey string) {
	c.mu.Lock()
	id, ok := c.inflight[formKey]
	c.mu.Unlock()
	if ok {
		c.Cancel(id)
	}
}

// Sweep drops settled submissions older than maxAge and returns how many
// were removed.
func (c *Controller) Sweep(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for id, sub := range c.submissions {
		sub.mu.Lock()
		settled := sub.state.IsTerminal() && time.Since(sub.settledAt) > maxAge
		sub.mu.Unlock()
		if settled {
			delete(c.submissions, id)
			removed++
		}
	}
	return removed
}

func (c *Controller) clearInflight(formKey, subID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[formKey] == subID {
		delete(c.inflight, formKey)
	}
}
