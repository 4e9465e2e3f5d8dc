package catalog_test

import (
	"context"
	"testing"
	"time"

	"tubemap/internal/catalog"
	"tubemap/internal/testsupport"
)

func samplePlace(id string) *catalog.PlaceEntity {
	return &catalog.PlaceEntity{
		KakaoPlaceID: id,
		Name:         "남포면옥",
		NameOfficial: "남포면옥",
		Category:     "음식점 > 한식 > 냉면",
		Address:      "서울 중구 다동 103",
		RoadAddress:  "서울 중구 남대문로9길 24",
		Lat:          37.568015,
		Lng:          126.981204,
		Phone:        "02-777-3131",
		ChannelTitle: "성시경 SUNG SI KYUNG",
		VideoID:      "vid-1",
		VideoURL:     "https://www.youtube.com/watch?v=vid-1",
		PublishedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ImageState:   catalog.ImagePending,
	}
}

func TestUpsertPlaceLastWriteWins(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := samplePlace("p-1")
	if err := store.UpsertPlace(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := samplePlace("p-1")
	second.ChannelTitle = "쯔양"
	second.VideoID = "vid-2"
	second.ImageState = catalog.ImageApproved
	if err := store.UpsertPlace(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	places, err := store.ListPlaces(ctx)
	if err != nil {
		t.Fatalf("ListPlaces: %v", err)
	}
	if len(places) != 1 {
		t.Fatalf("got %d places, want exactly one per place id", len(places))
	}
	got := places[0]
	if got.ChannelTitle != "쯔양" || got.VideoID != "vid-2" {
		t.Errorf("media attribution not overwritten: %#v", got)
	}
	if got.ImageState != catalog.ImageApproved {
		t.Errorf("image state = %s, want approved", got.ImageState)
	}
}

func TestGetPlaceAbsentReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	place, err := store.GetPlace(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if place != nil {
		t.Fatalf("expected nil, got %#v", place)
	}
}

func TestRecordProcessedUpsertsOneEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.RecordProcessed(ctx, &catalog.ProcessedRecord{
		VideoID:    "vid-1",
		Status:     catalog.StatusFailed,
		FailReason: "place search: boom",
	}); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := store.RecordProcessed(ctx, &catalog.ProcessedRecord{
		VideoID: "vid-1",
		Status:  catalog.StatusProcessed,
	}); err != nil {
		t.Fatalf("second record: %v", err)
	}

	record, err := store.GetProcessed(ctx, "vid-1")
	if err != nil {
		t.Fatalf("GetProcessed: %v", err)
	}
	if record == nil || record.Status != catalog.StatusProcessed {
		t.Fatalf("record = %#v, want processed", record)
	}
	if record.FailReason != "" {
		t.Errorf("fail reason = %q, want cleared on success", record.FailReason)
	}

	stats, err := store.LedgerStats(ctx)
	if err != nil {
		t.Fatalf("LedgerStats: %v", err)
	}
	if stats.Total != 1 || stats.Processed != 1 {
		t.Errorf("stats = %#v, want one processed entry", stats)
	}
}

func TestPlaceKeysAndDelete(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.UpsertPlace(ctx, samplePlace(id)); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	deleted, err := store.DeletePlaces(ctx, []string{"a", "c"})
	if err != nil {
		t.Fatalf("DeletePlaces: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	keys, err := store.PlaceKeys(ctx)
	if err != nil {
		t.Fatalf("PlaceKeys: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("keys = %v, want only b", keys)
	}
	if _, ok := keys["b"]; !ok {
		t.Errorf("keys = %v, want b to survive", keys)
	}
}
