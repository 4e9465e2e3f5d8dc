package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tubemap/internal/catalog"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show processed-video counts and recent ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			stats, err := store.LedgerStats(cmd.Context())
			if err != nil {
				return err
			}
			recent, err := store.RecentProcessed(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]columnSpec{
					numericColumn("Total"),
					numericColumn("Processed"),
					numericColumn("Skipped"),
					numericColumn("Failed"),
				},
				[][]string{{
					strconv.Itoa(stats.Total),
					strconv.Itoa(stats.Processed),
					strconv.Itoa(stats.Skipped),
					strconv.Itoa(stats.Failed),
				}},
			))

			if len(recent) == 0 {
				fmt.Fprintln(out, "No ledger entries yet")
				return nil
			}

			rows := make([][]string, 0, len(recent))
			for _, record := range recent {
				rows = append(rows, []string{
					record.VideoID,
					string(record.Status),
					record.FailReason,
					record.UpdatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]columnSpec{
					column("Video"),
					statusColumn("Status"),
					wideColumn("Reason", 48),
					column("Updated"),
				},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of recent entries to show")
	return cmd
}
