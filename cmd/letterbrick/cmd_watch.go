package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/myssom/letterbrick/internal/config"
	"github.com/myssom/letterbrick/internal/hermes"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print recorded-feedback events from NATS as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel, os.Stderr)

			if cfg.NatsURL == "" {
				return errors.New("NATS_URL is required")
			}
			hc, err := hermes.NewClient(cmd.Context(), cfg.NatsURL, cfg.NatsToken, slog.Default())
			if err != nil {
				return err
			}
			defer hc.Close()

			out := cmd.OutOrStdout()
			if err := hc.Subscribe(hermes.SubjectRecorded, func(_ string, data []byte) {
				printEvent(out, data)
			}); err != nil {
				return err
			}

			<-cmd.Context().Done()
			return nil
		},
	}
}

func printEvent(w io.Writer, data []byte) {
	var evt hermes.RecordedEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		fmt.Fprintf(w, "unreadable event: %v\n", err)
		return
	}
	stars := "-"
	if evt.Stars != "" {
		stars = evt.Stars
	}
	fmt.Fprintf(w, "%s  %s  %s  %s\n", evt.Key, evt.RecordID, stars, evt.CreativeText)
}
