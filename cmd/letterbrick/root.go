package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "letterbrick",
		Short: "Letterbrick - feedback for handwritten Korean sentence transcription",
		Long: `Letterbrick evaluates a learner's transcription exercise.

The learner copies an original sentence, rewrites it in a different form and
writes a creative variation. Letterbrick analyses the original, scores both
rewrites with a language model and keeps a history of every complete run.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newFeedbackCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newWatchCommand())

	return cmd
}
