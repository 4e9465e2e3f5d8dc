package catalog_test

import (
	"context"
	"testing"

	"tubemap/internal/catalog"
	"tubemap/internal/testsupport"
)

func TestReconcilePromotesAndPrunes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fallback := catalog.NewFallbackStore(cfg.FallbackPath())
	ctx := context.Background()

	// Primary holds one row that is absent from the fallback snapshot.
	if err := store.UpsertPlace(ctx, samplePlace("stale")); err != nil {
		t.Fatalf("seed primary: %v", err)
	}
	// Fallback holds two entries, one of which updates an existing row.
	shared := samplePlace("shared")
	if err := store.UpsertPlace(ctx, shared); err != nil {
		t.Fatalf("seed shared: %v", err)
	}
	updated := samplePlace("shared")
	updated.ChannelTitle = "쯔양"
	for _, entity := range []*catalog.PlaceEntity{updated, samplePlace("new")} {
		if err := fallback.Upsert(entity); err != nil {
			t.Fatalf("seed fallback: %v", err)
		}
	}

	report, err := catalog.Reconcile(ctx, store, fallback, nil)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.FallbackEntries != 2 || report.Promoted != 2 || report.Deleted != 1 {
		t.Fatalf("report = %#v", report)
	}

	keys, err := store.PlaceKeys(ctx)
	if err != nil {
		t.Fatalf("PlaceKeys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("keys = %v, want shared and new", keys)
	}
	if _, ok := keys["stale"]; ok {
		t.Error("stale row should have been deleted")
	}

	place, err := store.GetPlace(ctx, "shared")
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if place == nil || place.ChannelTitle != "쯔양" {
		t.Errorf("shared row not updated from fallback: %#v", place)
	}
}

func TestReconcileEmptyFallbackClearsPrimary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fallback := catalog.NewFallbackStore(cfg.FallbackPath())
	ctx := context.Background()

	if err := store.UpsertPlace(ctx, samplePlace("only")); err != nil {
		t.Fatalf("seed primary: %v", err)
	}

	report, err := catalog.Reconcile(ctx, store, fallback, nil)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if report.Deleted != 1 || report.Promoted != 0 {
		t.Fatalf("report = %#v", report)
	}

	keys, err := store.PlaceKeys(ctx)
	if err != nil {
		t.Fatalf("PlaceKeys: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("keys = %v, want empty primary", keys)
	}
}
