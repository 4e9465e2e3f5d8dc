package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"tubemap/internal/catalog"
	"tubemap/internal/testsupport"
)

func TestGatewayPrefersPrimary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fallback := catalog.NewFallbackStore(cfg.FallbackPath())
	gw := catalog.NewGateway(store, fallback, nil)
	ctx := context.Background()

	sink, err := gw.UpsertPlace(ctx, samplePlace("p-1"))
	if err != nil {
		t.Fatalf("UpsertPlace: %v", err)
	}
	if sink != catalog.SinkPrimary {
		t.Errorf("sink = %s, want primary", sink)
	}

	place, err := store.GetPlace(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if place == nil {
		t.Fatal("entity missing from primary store")
	}
}

func TestGatewayFallbackTransparency(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fallback := catalog.NewFallbackStore(cfg.FallbackPath())
	gw := catalog.NewGateway(store, fallback, nil)
	ctx := context.Background()

	// Kill the primary so the next write fails.
	store.Close()

	sink, err := gw.UpsertPlace(ctx, samplePlace("p-1"))
	if err != nil {
		t.Fatalf("UpsertPlace should succeed via fallback: %v", err)
	}
	if sink != catalog.SinkFallback {
		t.Errorf("sink = %s, want fallback", sink)
	}
	if gw.PrimaryEnabled() {
		t.Error("primary should be latched off after the first failure")
	}

	entries, err := fallback.Load()
	if err != nil {
		t.Fatalf("Load fallback: %v", err)
	}
	if len(entries) != 1 || entries[0].KakaoPlaceID != "p-1" {
		t.Fatalf("fallback entries = %#v", entries)
	}

	// Later writes go straight to the fallback file.
	if sink, err := gw.UpsertPlace(ctx, samplePlace("p-2")); err != nil || sink != catalog.SinkFallback {
		t.Fatalf("second upsert sink = %s err = %v", sink, err)
	}
}

func TestGatewayNilPrimaryStartsOnFallback(t *testing.T) {
	fallback := catalog.NewFallbackStore(filepath.Join(t.TempDir(), "places_fallback.json"))
	gw := catalog.NewGateway(nil, fallback, nil)

	sink, err := gw.UpsertPlace(context.Background(), samplePlace("p-1"))
	if err != nil {
		t.Fatalf("UpsertPlace: %v", err)
	}
	if sink != catalog.SinkFallback {
		t.Errorf("sink = %s, want fallback", sink)
	}
}

func TestGatewayLedgerDegradesToMemory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	fallback := catalog.NewFallbackStore(cfg.FallbackPath())
	gw := catalog.NewGateway(store, fallback, nil)
	ctx := context.Background()

	store.Close()

	if err := gw.RecordProcessed(ctx, "vid-1", catalog.StatusSkipped, "CHANNEL_NOT_IN_LIST"); err != nil {
		t.Fatalf("RecordProcessed: %v", err)
	}

	record, err := gw.GetProcessed(ctx, "vid-1")
	if err != nil {
		t.Fatalf("GetProcessed: %v", err)
	}
	if record == nil || record.Status != catalog.StatusSkipped {
		t.Fatalf("record = %#v, want in-memory skipped entry", record)
	}

	missing, err := gw.GetProcessed(ctx, "vid-2")
	if err != nil {
		t.Fatalf("GetProcessed missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("record = %#v, want nil for unseen video", missing)
	}
}
