package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Search for candidate videos and ingest the places they mention",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, store, err := ctx.buildOrchestrator()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			summary, err := orch.DiscoverAndProcess(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s (%q): %d candidates\n", summary.RunID, summary.Query, summary.Candidates)
			fmt.Fprintf(out, "  persisted: %d\n", summary.Persisted)
			fmt.Fprintf(out, "  skipped:   %d\n", summary.Skipped)
			fmt.Fprintf(out, "  failed:    %d\n", summary.Failed)
			if summary.Duplicates > 0 {
				fmt.Fprintf(out, "  already processed: %d\n", summary.Duplicates)
			}
			fmt.Fprintf(out, "  duration:  %s\n", summary.Duration.Round(time.Second))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query (a seed query is generated when omitted)")
	return cmd
}
