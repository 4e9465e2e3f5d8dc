package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubemap/internal/catalog"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "video <video-id>",
		Short: "Run a single video through the ingestion pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, store, err := ctx.buildOrchestrator()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			outcome, err := orch.ProcessSingleVideo(cmd.Context(), args[0], label)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case outcome.Duplicate:
				fmt.Fprintf(out, "Video %s was already processed\n", outcome.VideoID)
			case outcome.Status == catalog.StatusProcessed:
				fmt.Fprintf(out, "Persisted %q from video %s (sink=%s)\n", outcome.PlaceName, outcome.VideoID, outcome.Sink)
			case outcome.Status == catalog.StatusSkipped:
				fmt.Fprintf(out, "Skipped video %s: %s\n", outcome.VideoID, outcome.Reason)
			default:
				fmt.Fprintf(out, "Failed video %s: %s\n", outcome.VideoID, outcome.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Media attribution label stored with the place")
	return cmd
}
