// Package pipeline orchestrates the feedback stages into the three user
// actions: analyze, transform and creative.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/myssom/letterbrick/internal/feedback"
	"github.com/myssom/letterbrick/internal/rating"
	"github.com/myssom/letterbrick/internal/session"
	"github.com/myssom/letterbrick/internal/store"
)

// ErrEmptyText rejects an action whose required sentence is blank.
var ErrEmptyText = errors.New("sentence text is empty")

// CollaboratorError is a failed side effect (history append, export, OCR).
// The action's feedback was still computed when it is returned.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// StageRunner executes one stage. *feedback.Runner implements it.
type StageRunner interface {
	Run(ctx context.Context, req feedback.Request) (feedback.Result, error)
}

// Notifier is told about every persisted record.
type Notifier interface {
	Notify(ctx context.Context, o Outcome) error
}

// RecordObserver counts creative run outcomes.
type RecordObserver interface {
	ObserveRecord(outcome string)
}

// Creative run outcomes reported to the RecordObserver.
const (
	OutcomePersisted   = "persisted"
	OutcomeUnpersisted = "unpersisted"
	OutcomeStageFailed = "stage_failed"
	OutcomeIncomplete  = "incomplete"
)

// Submission is the learner's three sentences for a creative run.
type Submission struct {
	Original    string `json:"original"`
	Transformed string `json:"transformed"`
	Creative    string `json:"creative"`
}

// TransformFeedback holds the score and remark for a transformed sentence.
type TransformFeedback struct {
	Score  feedback.Result `json:"score"`
	Remark feedback.Result `json:"remark"`
}

// Outcome is the result of a creative run. Rating is display-only and only
// meaningful when Rated is true.
type Outcome struct {
	Record    feedback.Record
	Rating    rating.Rating
	Rated     bool
	Persisted bool
}

type Pipeline struct {
	runner    StageRunner
	history   store.History
	notifiers []Notifier
	observer  RecordObserver
	parallel  bool
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Pipeline)

func WithNotifiers(n ...Notifier) Option {
	return func(p *Pipeline) {
		p.notifiers = append(p.notifiers, n...)
	}
}

// WithParallelStages runs the score and remark of a pair concurrently.
func WithParallelStages(on bool) Option {
	return func(p *Pipeline) {
		p.parallel = on
	}
}

func WithRecordObserver(o RecordObserver) Option {
	return func(p *Pipeline) {
		p.observer = o
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

func New(runner StageRunner, history store.History, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		runner:  runner,
		history: history,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze returns the analysis of original, reusing the session cache when
// the text is unchanged. A nil cache always computes.
func (p *Pipeline) Analyze(ctx context.Context, cache *session.Cache, original string) (feedback.Result, error) {
	if blank(original) {
		return feedback.Result{}, ErrEmptyText
	}
	if cache == nil {
		return p.analyze(ctx, original)
	}
	return cache.GetOrCompute(ctx, original, p.analyze)
}

// Transform scores a transformed sentence. It never touches the cache.
func (p *Pipeline) Transform(ctx context.Context, transformed string) (TransformFeedback, error) {
	if blank(transformed) {
		return TransformFeedback{}, ErrEmptyText
	}
	score, remark, err := p.runPair(ctx, feedback.StageTransformScore, feedback.StageTransformRemark, transformed)
	if err != nil {
		return TransformFeedback{}, err
	}
	return TransformFeedback{Score: score, Remark: remark}, nil
}

// Creative runs every stage for a submission, builds the record and appends
// it to history. Stages whose source text is blank are skipped and leave
// their fields empty. A stage failure returns before anything is recorded
// and leaves the cache as it was.
func (p *Pipeline) Creative(ctx context.Context, cache *session.Cache, sub Submission) (*Outcome, error) {
	if blank(sub.Creative) {
		return nil, ErrEmptyText
	}

	b := feedback.NewRecordBuilder().
		Set(feedback.FieldOriginalText, sub.Original).
		Set(feedback.FieldTransformedText, sub.Transformed).
		Set(feedback.FieldCreativeText, sub.Creative)

	var fresh *feedback.Result
	if blank(sub.Original) {
		b.Set(feedback.FieldAnalysis, "")
	} else if cached, ok := p.lookup(cache, sub.Original); ok {
		b.SetResult(cached)
	} else {
		res, err := p.analyze(ctx, sub.Original)
		if err != nil {
			return nil, p.stageFailed(err)
		}
		fresh = &res
		b.SetResult(res)
	}

	if blank(sub.Transformed) {
		b.Set(feedback.FieldTransformScore, "").Set(feedback.FieldTransformRemark, "")
	} else {
		score, remark, err := p.runPair(ctx, feedback.StageTransformScore, feedback.StageTransformRemark, sub.Transformed)
		if err != nil {
			return nil, p.stageFailed(err)
		}
		b.SetResult(score).SetResult(remark)
	}

	score, remark, err := p.runPair(ctx, feedback.StageCreativeScore, feedback.StageCreativeRemark, sub.Creative)
	if err != nil {
		return nil, p.stageFailed(err)
	}
	b.SetResult(score).SetResult(remark)

	rec, err := b.Build(p.now())
	if err != nil {
		p.observe(OutcomeIncomplete)
		p.logger.Error("record assembly failed", "error", err)
		return nil, err
	}

	if fresh != nil && cache != nil {
		cache.Put(sub.Original, *fresh)
	}

	out := &Outcome{Record: rec}
	out.Rating, out.Rated = rating.Extract(score.RawText)

	if err := p.history.Append(ctx, rec.Key(), rec); err != nil {
		p.observe(OutcomeUnpersisted)
		p.logger.Error("history append failed", "key", rec.Key(), "error", err)
		return out, &CollaboratorError{Op: "append history", Err: err}
	}
	out.Persisted = true
	p.observe(OutcomePersisted)
	p.logger.Info("feedback recorded", "key", rec.Key(), "id", rec.ID, "rated", out.Rated)

	p.notify(ctx, *out)
	return out, nil
}

func (p *Pipeline) analyze(ctx context.Context, original string) (feedback.Result, error) {
	return p.runner.Run(ctx, feedback.Request{Stage: feedback.StageAnalysis, SourceText: original})
}

func (p *Pipeline) lookup(cache *session.Cache, original string) (feedback.Result, bool) {
	if cache == nil {
		return feedback.Result{}, false
	}
	return cache.Lookup(original)
}

// runPair runs a score stage and its remark stage on the same text.
func (p *Pipeline) runPair(ctx context.Context, scoreStage, remarkStage feedback.Stage, text string) (feedback.Result, feedback.Result, error) {
	var score, remark feedback.Result

	if !p.parallel {
		var err error
		if score, err = p.runner.Run(ctx, feedback.Request{Stage: scoreStage, SourceText: text}); err != nil {
			return score, remark, err
		}
		remark, err = p.runner.Run(ctx, feedback.Request{Stage: remarkStage, SourceText: text})
		return score, remark, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		score, err = p.runner.Run(gctx, feedback.Request{Stage: scoreStage, SourceText: text})
		return err
	})
	g.Go(func() error {
		var err error
		remark, err = p.runner.Run(gctx, feedback.Request{Stage: remarkStage, SourceText: text})
		return err
	})
	err := g.Wait()
	return score, remark, err
}

func (p *Pipeline) stageFailed(err error) error {
	p.observe(OutcomeStageFailed)
	return err
}

func (p *Pipeline) notify(ctx context.Context, o Outcome) {
	for _, n := range p.notifiers {
		if err := n.Notify(ctx, o); err != nil {
			p.logger.Warn("notification failed", "key", o.Record.Key(), "error", err)
		}
	}
}

func (p *Pipeline) observe(outcome string) {
	if p.observer != nil {
		p.observer.ObserveRecord(outcome)
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
