package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubemap/internal/catalog"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Fold the fallback file into the primary store",
		Long: "Promotes every entry in the fallback file into the primary store and " +
			"deletes primary rows whose place id is no longer present in the fallback " +
			"snapshot. Run this after an ingestion run that degraded to the fallback file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			fallback := catalog.NewFallbackStore(cfg.FallbackPath())
			report, err := catalog.Reconcile(cmd.Context(), store, fallback, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fallback entries: %d\n", report.FallbackEntries)
			fmt.Fprintf(out, "Promoted to primary: %d\n", report.Promoted)
			fmt.Fprintf(out, "Stale rows deleted: %d\n", report.Deleted)
			return nil
		},
	}
}
