package catalog

import (
	"strings"
	"time"
)

// ImageState tracks whether a place's thumbnail was reachable at ingest time.
type ImageState string

const (
	ImagePending  ImageState = "pending"
	ImageApproved ImageState = "approved"
)

// ProcessedStatus is the lifecycle of one attempted video in the idempotency
// ledger.
type ProcessedStatus string

const (
	StatusProcessed ProcessedStatus = "processed"
	StatusSkipped   ProcessedStatus = "skipped"
	StatusFailed    ProcessedStatus = "failed"
)

var processedStatusSet = map[ProcessedStatus]struct{}{
	StatusProcessed: {},
	StatusSkipped:   {},
	StatusFailed:    {},
}

// ParseProcessedStatus converts a string into a known ProcessedStatus.
func ParseProcessedStatus(value string) (ProcessedStatus, bool) {
	normalized := ProcessedStatus(strings.ToLower(strings.TrimSpace(value)))
	_, ok := processedStatusSet[normalized]
	return normalized, ok
}

// PlaceEntity is the persisted unit, uniquely keyed by the external place
// provider's id. Later successful ingestions overwrite media attribution.
type PlaceEntity struct {
	KakaoPlaceID     string     `json:"kakao_place_id"`
	Name             string     `json:"name"`
	NameOfficial     string     `json:"name_official,omitempty"`
	Category         string     `json:"category,omitempty"`
	Address          string     `json:"address,omitempty"`
	RoadAddress      string     `json:"road_address,omitempty"`
	Lat              float64    `json:"lat"`
	Lng              float64    `json:"lng"`
	Phone            string     `json:"phone,omitempty"`
	ChannelTitle     string     `json:"channel_title,omitempty"`
	MediaLabel       string     `json:"media_label,omitempty"`
	VideoID          string     `json:"video_id,omitempty"`
	VideoURL         string     `json:"video_url,omitempty"`
	PublishedAt      time.Time  `json:"published_at,omitempty"`
	Description      string     `json:"description,omitempty"`
	BestComment      string     `json:"best_comment,omitempty"`
	BestCommentLikes int        `json:"best_comment_like_count,omitempty"`
	ImageState       ImageState `json:"image_state"`
	ImageURL         string     `json:"image_url,omitempty"`
	ImageType        string     `json:"image_type,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ProcessedRecord is one idempotency-ledger entry. A video marked processed is
// never re-attempted; skipped and failed entries are informative only.
type ProcessedRecord struct {
	VideoID    string          `json:"video_id"`
	Status     ProcessedStatus `json:"status"`
	FailReason string          `json:"fail_reason,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// LedgerSummary aggregates ledger counts for diagnostic output.
type LedgerSummary struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int
}
