package catalog

import (
	"context"
	"log/slog"

	"tubemap/internal/logging"
)

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	FallbackEntries int
	Promoted        int
	Deleted         int
}

// Reconcile folds the fallback file into the primary store and removes
// primary rows whose place id no longer appears in the fallback snapshot's
// key set. It is meant to run offline, after a degraded ingestion run has
// finished writing to the fallback file.
func Reconcile(ctx context.Context, store *Store, fallback *FallbackStore, logger *slog.Logger) (ReconcileReport, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var report ReconcileReport

	entries, err := fallback.Load()
	if err != nil {
		return report, err
	}
	report.FallbackEntries = len(entries)

	keys := make(map[string]struct{}, len(entries))
	for i := range entries {
		entity := entries[i]
		if entity.KakaoPlaceID == "" {
			continue
		}
		keys[entity.KakaoPlaceID] = struct{}{}
		if err := store.UpsertPlace(ctx, &entity); err != nil {
			return report, err
		}
		report.Promoted++
	}

	existing, err := store.PlaceKeys(ctx)
	if err != nil {
		return report, err
	}
	var stale []string
	for key := range existing {
		if _, ok := keys[key]; !ok {
			stale = append(stale, key)
		}
	}
	if len(stale) > 0 {
		deleted, err := store.DeletePlaces(ctx, stale)
		if err != nil {
			return report, err
		}
		report.Deleted = int(deleted)
	}

	logger.Info("reconciled fallback file into primary store",
		logging.Int("fallback_entries", report.FallbackEntries),
		logging.Int("promoted", report.Promoted),
		logging.Int("deleted", report.Deleted))
	return report, nil
}
