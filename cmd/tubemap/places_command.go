package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tubemap/internal/catalog"
)

func newPlacesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "places",
		Short: "List persisted places",
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

			places, err := store.ListPlaces(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(places) == 0 {
				fmt.Fprintln(out, "No places persisted yet")
				return nil
			}

			rows := make([][]string, 0, len(places))
			for _, place := range places {
				address := place.RoadAddress
				if address == "" {
					address = place.Address
				}
				rows = append(rows, []string{
					place.KakaoPlaceID,
					place.NameOfficial,
					address,
					place.ChannelTitle,
					string(place.ImageState),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]columnSpec{
					column("Place ID"),
					column("Name"),
					wideColumn("Address", 40),
					column("Channel"),
					column("Image"),
				},
				rows,
			))
			fmt.Fprintf(out, "%s places\n", strconv.Itoa(len(places)))
			return nil
		},
	}
}
