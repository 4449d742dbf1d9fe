package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/myssom/letterbrick/internal/anthropic"
	"github.com/myssom/letterbrick/internal/config"
	"github.com/myssom/letterbrick/internal/feedback"
	"github.com/myssom/letterbrick/internal/hermes"
	"github.com/myssom/letterbrick/internal/metrics"
	"github.com/myssom/letterbrick/internal/openai"
	"github.com/myssom/letterbrick/internal/pipeline"
	"github.com/myssom/letterbrick/internal/slack"
	"github.com/myssom/letterbrick/internal/store"
)

// app holds the components shared by the commands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	history  store.History
	pipeline *pipeline.Pipeline
	ocr      *openai.Recognizer
	closers  []func()
}

type appOptions struct {
	llm       bool
	notifiers bool
	memory    bool
}

func newApp(ctx context.Context, cfg config.Config, opts appOptions) (*app, error) {
	a := &app{cfg: cfg, logger: slog.Default(), registry: prometheus.NewRegistry()}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = metrics.New(a.registry)

	history, err := a.openHistory(ctx, opts.memory)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.history = history

	if !opts.llm {
		return a, nil
	}

	llm, err := a.newCompleter()
	if err != nil {
		a.Close()
		return nil, err
	}

	runnerOpts := []feedback.RunnerOption{feedback.WithObserver(a.metrics)}
	if cfg.StageRateLimit > 0 {
		runnerOpts = append(runnerOpts, feedback.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.StageRateLimit), 1)))
	}
	runner := feedback.NewRunner(llm, a.logger, runnerOpts...)

	pipelineOpts := []pipeline.Option{
		pipeline.WithRecordObserver(a.metrics),
		pipeline.WithParallelStages(cfg.ParallelStages),
	}
	if opts.notifiers {
		notifiers, err := a.openNotifiers(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
		pipelineOpts = append(pipelineOpts, pipeline.WithNotifiers(notifiers...))
	}

	a.pipeline = pipeline.New(runner, a.history, a.logger, pipelineOpts...)
	return a, nil
}

func (a *app) openHistory(ctx context.Context, memory bool) (store.History, error) {
	switch {
	case memory:
		return store.NewMemory(), nil
	case a.cfg.DatabaseURL != "":
		pg, err := store.NewPostgres(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		a.logger.Info("history backed by postgres")
		return pg, nil
	default:
		f := store.NewFile(a.cfg.HistoryFile)
		a.logger.Info("history backed by file", "path", f.Path())
		return f, nil
	}
}

// newCompleter picks the stage provider. The OpenAI client also serves OCR
// whenever a key is present, whatever the stage provider.
func (a *app) newCompleter() (feedback.Completer, error) {
	var oc *openai.Client
	if a.cfg.OpenAIAPIKey != "" {
		oc = openai.NewClient(a.cfg.OpenAIAPIKey, a.cfg.Model, openai.WithBaseURL(a.cfg.OpenAIBaseURL))
		a.ocr = oc.Recognizer(a.cfg.OCRModel)
	}

	switch a.cfg.LLMProvider {
	case config.ProviderAnthropic:
		if a.cfg.AnthropicAPIKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		a.logger.Info("anthropic client ready", "model", a.cfg.AnthropicModel)
		return anthropic.NewClient(a.cfg.AnthropicAPIKey, a.cfg.AnthropicModel), nil
	default:
		if oc == nil {
			return nil, errors.New("OPENAI_API_KEY is required for the openai provider")
		}
		a.logger.Info("openai client ready", "model", oc.Model())
		return oc, nil
	}
}

// openNotifiers connects the optional outbound channels. Missing settings
// simply leave a channel out.
func (a *app) openNotifiers(ctx context.Context) ([]pipeline.Notifier, error) {
	var notifiers []pipeline.Notifier

	if a.cfg.NatsURL != "" {
		hc, err := hermes.NewClient(ctx, a.cfg.NatsURL, a.cfg.NatsToken, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, hc.Close)
		notifiers = append(notifiers, hc)
		a.logger.Info("NATS connected", "url", a.cfg.NatsURL)
	}

	if a.cfg.SlackBotToken != "" && a.cfg.SlackChannel != "" {
		notifiers = append(notifiers, slack.NewPoster(a.cfg.SlackBotToken, a.cfg.SlackChannel, a.logger))
		a.logger.Info("slack poster ready", "channel", a.cfg.SlackChannel)
	}

	return notifiers, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
