package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/myssom/letterbrick/internal/config"
	"github.com/myssom/letterbrick/internal/rating"
	"github.com/myssom/letterbrick/internal/report"
	"github.com/myssom/letterbrick/internal/store"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded evaluations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel, os.Stderr)

			a, err := newApp(cmd.Context(), cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.history.LoadAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			entries = store.NewestFirst(entries)
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "아직 저장된 히스토리가 없습니다.")
				return nil
			}
			printHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 = all)")
	return cmd
}

const creativeColumnWidth = 40

func printHistory(w io.Writer, entries []store.Entry) {
	header := []string{"KEY", "ID", "창의적", "별점"}
	widths := []int{len("2006-01-02 15:04:05"), 36, creativeColumnWidth, 0}

	writeRow(w, header, widths)
	for _, e := range entries {
		stars := "-"
		if r, ok := rating.Extract(e.Record.CreativeScore); ok {
			stars = r.String()
		}
		creative := runewidth.Truncate(strings.ReplaceAll(e.Record.CreativeText, "\n", " "), creativeColumnWidth, "…")
		writeRow(w, []string{e.Key, e.Record.ID.String(), creative, stars}, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	for i, c := range cells {
		if i > 0 {
			io.WriteString(w, "  ")
		}
		if widths[i] > 0 && i < len(cells)-1 {
			c = padRight(c, widths[i])
		}
		io.WriteString(w, c)
	}
	io.WriteString(w, "\n")
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <record-id>",
		Short: "Write the PDF report of a recorded evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[0], err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel, os.Stderr)

			a, err := newApp(cmd.Context(), cfg, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := store.FindByID(cmd.Context(), a.history, id)
			if err != nil {
				return fmt.Errorf("find record: %w", err)
			}

			exporter, err := report.NewPDF(cfg.ReportFont)
			if err != nil {
				return err
			}
			doc, err := exporter.Render(report.Title, entry.Record.Sections())
			if err != nil {
				return err
			}

			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", report.FileName, "Output file")
	return cmd
}
