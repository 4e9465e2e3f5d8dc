package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tubemap/internal/logging"
)

// Sink identifies which store accepted a write.
type Sink string

const (
	SinkPrimary  Sink = "primary"
	SinkFallback Sink = "fallback"
)

// Gateway routes persistence through the primary store while it is healthy
// and through the fallback file once it is not. The first primary failure in
// a process's lifetime disables the primary for the remainder of the run;
// there is no automatic recovery, a later run reconciles the two stores.
type Gateway struct {
	primary  *Store
	fallback *FallbackStore
	logger   *slog.Logger

	mu             sync.Mutex
	primaryEnabled bool
	ledger         map[string]ProcessedRecord
}

// NewGateway wires the two stores together. The primary may be nil, in which
// case every write lands in the fallback file from the start.
func NewGateway(primary *Store, fallback *FallbackStore, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gateway{
		primary:        primary,
		fallback:       fallback,
		logger:         logger,
		primaryEnabled: primary != nil,
		ledger:         make(map[string]ProcessedRecord),
	}
}

// PrimaryEnabled reports whether writes still target the primary store.
func (g *Gateway) PrimaryEnabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.primaryEnabled
}

func (g *Gateway) disablePrimary(operation string, err error) {
	g.mu.Lock()
	already := !g.primaryEnabled
	g.primaryEnabled = false
	g.mu.Unlock()
	if already {
		return
	}
	g.logger.Warn("primary store disabled for the rest of this run",
		logging.String("operation", operation),
		logging.Error(err))
}

// UpsertPlace persists the entity and reports which sink holds it. A primary
// failure falls through to the fallback file in the same call so the entity
// is never lost between stores.
func (g *Gateway) UpsertPlace(ctx context.Context, entity *PlaceEntity) (Sink, error) {
	if entity == nil {
		return "", errors.New("entity is nil")
	}

	if g.PrimaryEnabled() {
		if err := g.primary.UpsertPlace(ctx, entity); err != nil {
			g.disablePrimary("upsert_place", err)
		} else {
			return SinkPrimary, nil
		}
	}

	if g.fallback == nil {
		return "", errors.New("no store available for place write")
	}
	if err := g.fallback.Upsert(entity); err != nil {
		return "", err
	}
	return SinkFallback, nil
}

// GetProcessed returns the ledger record for a video, or nil when the video
// has never been attempted. With the primary disabled the in-memory ledger
// still answers for videos seen earlier in this run.
func (g *Gateway) GetProcessed(ctx context.Context, videoID string) (*ProcessedRecord, error) {
	if g.PrimaryEnabled() {
		record, err := g.primary.GetProcessed(ctx, videoID)
		if err != nil {
			g.disablePrimary("get_processed", err)
		} else {
			return record, nil
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if record, ok := g.ledger[videoID]; ok {
		copied := record
		return &copied, nil
	}
	return nil, nil
}

// RecordProcessed writes the ledger entry for a processing attempt. When the
// primary is down the entry is kept in memory so idempotency holds within
// the current run.
func (g *Gateway) RecordProcessed(ctx context.Context, videoID string, status ProcessedStatus, failReason string) error {
	if g.PrimaryEnabled() {
		record := &ProcessedRecord{VideoID: videoID, Status: status, FailReason: failReason}
		if err := g.primary.RecordProcessed(ctx, record); err != nil {
			g.disablePrimary("record_processed", err)
		} else {
			return nil
		}
	}

	now := time.Now().UTC()
	g.mu.Lock()
	defer g.mu.Unlock()
	record, ok := g.ledger[videoID]
	if !ok {
		record = ProcessedRecord{VideoID: videoID, CreatedAt: now}
	}
	record.Status = status
	record.FailReason = failReason
	record.UpdatedAt = now
	g.ledger[videoID] = record
	return nil
}
