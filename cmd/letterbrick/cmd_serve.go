package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/myssom/letterbrick/internal/api"
	"github.com/myssom/letterbrick/internal/config"
	"github.com/myssom/letterbrick/internal/report"
	"github.com/myssom/letterbrick/internal/session"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the Letterbrick HTTP API.

Each learner opens a session, which owns the cached analysis of the original
sentence. Complete creative runs are appended to history and announced on NATS
and Slack when those are configured.`,
		Args: cobra.NoArgs,
		RunE: serveE,
	}
}

func serveE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel, os.Stdout)

	slog.Info("letterbrick starting", "port", cfg.Port, "provider", cfg.LLMProvider)

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, appOptions{llm: true, notifiers: true})
	if err != nil {
		return err
	}
	defer a.Close()

	exporter, err := report.NewPDF(cfg.ReportFont)
	if err != nil {
		return err
	}
	if cfg.ReportFont == "" {
		slog.Warn("REPORT_FONT not set, PDF reports cannot render Hangul")
	}

	opts := []api.Option{
		api.WithExporter(exporter),
		api.WithMetrics(a.registry),
	}
	if a.ocr != nil {
		opts = append(opts, api.WithRecognizer(a.ocr))
	} else {
		slog.Warn("OPENAI_API_KEY not set, running without OCR")
	}

	srv := api.NewServer(cfg.Port, cfg.APIToken, a.pipeline, session.NewRegistry(a.metrics), a.history, slog.Default(), opts...)

	slog.Info("letterbrick ready", "port", cfg.Port)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	slog.Info("letterbrick stopped")
	return nil
}
