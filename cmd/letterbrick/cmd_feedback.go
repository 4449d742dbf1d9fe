package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/myssom/letterbrick/internal/config"
	"github.com/myssom/letterbrick/internal/pipeline"
	"github.com/myssom/letterbrick/internal/session"
)

func newFeedbackCommand() *cobra.Command {
	var (
		sub    pipeline.Submission
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Run one creative evaluation from the command line",
		Long: `Run every feedback stage for one submission and print the result.

Only --creative is required. A blank --original skips the analysis and a blank
--transformed skips the transform evaluation; their sections stay empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel, os.Stderr)

			a, err := newApp(cmd.Context(), cfg, appOptions{llm: true, notifiers: !noSave, memory: noSave})
			if err != nil {
				return err
			}
			defer a.Close()

			sub.Original = strings.TrimSpace(sub.Original)
			sub.Transformed = strings.TrimSpace(sub.Transformed)
			sub.Creative = strings.TrimSpace(sub.Creative)

			out, err := a.pipeline.Creative(cmd.Context(), session.NewCache(a.metrics), sub)
			if out == nil {
				return err
			}
			printOutcome(cmd.OutOrStdout(), *out)
			return err
		},
	}

	cmd.Flags().StringVar(&sub.Original, "original", "", "Original sentence")
	cmd.Flags().StringVar(&sub.Transformed, "transformed", "", "Form-transformed sentence")
	cmd.Flags().StringVar(&sub.Creative, "creative", "", "Creative sentence")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Keep the record in memory only")
	_ = cmd.MarkFlagRequired("creative")

	return cmd
}

func printOutcome(w io.Writer, out pipeline.Outcome) {
	for _, s := range out.Record.Sections() {
		if s.Text == "" {
			continue
		}
		fmt.Fprintf(w, "■ %s\n%s\n\n", s.Label, s.Text)
	}
	if out.Rated {
		fmt.Fprintf(w, "별점: %s\n", out.Rating.String())
	} else {
		fmt.Fprintln(w, "별점: -")
	}
	if out.Persisted {
		fmt.Fprintf(w, "기록: %s (%s)\n", out.Record.Key(), out.Record.ID)
	}
}
