package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// StageObserver receives the outcome of every stage call.
type StageObserver interface {
	ObserveStage(stage string, ok bool, elapsed time.Duration)
}

// Runner sends one built prompt to the completion capability per call.
// It does not parse or validate the response beyond requiring text.
type Runner struct {
	llm      Completer
	limiter  *rate.Limiter
	observer StageObserver
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRateLimiter makes every call wait for a token first. A cancelled wait
// is reported as a stage failure.
func WithRateLimiter(l *rate.Limiter) RunnerOption {
	return func(r *Runner) {
		r.limiter = l
	}
}

// WithObserver records call outcomes, e.g. into Prometheus.
func WithObserver(o StageObserver) RunnerOption {
	return func(r *Runner) {
		r.observer = o
	}
}

func NewRunner(llm Completer, logger *slog.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{llm: llm, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run builds the prompt for req and returns the evaluator text. Every
// failure comes back as a *StageError.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	prompt, err := Build(req.Stage, req.SourceText)
	if err != nil {
		return Result{}, &StageError{Stage: req.Stage, SourceText: req.SourceText, Err: err}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return Result{}, r.fail(req, fmt.Errorf("rate limit wait: %w", err), 0)
		}
	}

	r.logger.Debug("running stage", "stage", req.Stage, "text_len", len(req.SourceText))

	start := time.Now()
	raw, err := r.llm.Complete(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, r.fail(req, err, elapsed)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Result{}, r.fail(req, ErrEmptyResponse, elapsed)
	}

	r.observe(req.Stage, true, elapsed)
	r.logger.Info("stage complete", "stage", req.Stage, "elapsed", elapsed, "response_len", len(raw))

	return Result{Stage: req.Stage, RawText: raw}, nil
}

func (r *Runner) fail(req Request, err error, elapsed time.Duration) error {
	r.observe(req.Stage, false, elapsed)
	r.logger.Error("stage failed", "stage", req.Stage, "error", err)
	return &StageError{Stage: req.Stage, SourceText: req.SourceText, Err: err}
}

func (r *Runner) observe(stage Stage, ok bool, elapsed time.Duration) {
	if r.observer != nil {
		r.observer.ObserveStage(string(stage), ok, elapsed)
	}
}
