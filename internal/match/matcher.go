// Package match scores place-search candidates against the extracted store
// name and region hint, and classifies the best candidate for persistence.
package match

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"tubemap/internal/config"
	"tubemap/internal/logging"
	"tubemap/internal/services/kakao"
)

// Status classifies how confident the matcher is in a candidate.
type Status string

const (
	StatusApproved Status = "approved"
	StatusReview   Status = "review"
	StatusRejected Status = "rejected"
)

// Result is the winning candidate for one search call.
type Result struct {
	Place    kakao.Place
	Score    int
	Status   Status
	MenuHint string
}

// Searcher is the provider surface the matcher needs.
type Searcher interface {
	KeywordSearch(ctx context.Context, query string, size int) ([]kakao.Place, error)
}

// Matcher queries the place provider and scores returned candidates.
type Matcher struct {
	searcher Searcher
	weights  config.Match
	pageSize int
	logger   *slog.Logger
}

// New constructs a Matcher. pageSize caps how many candidates one search
// returns and scores.
func New(searcher Searcher, weights config.Match, pageSize int, logger *slog.Logger) *Matcher {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Matcher{
		searcher: searcher,
		weights:  weights,
		pageSize: pageSize,
		logger:   logging.NewComponentLogger(logger, "match"),
	}
}

// Search issues one keyword search for the joined (region, name, menu) query
// and returns the single highest-scoring candidate, or nil when the provider
// returned no results. Request failures propagate as errors; both cases are
// hard failures for the pipeline.
func (m *Matcher) Search(ctx context.Context, name, regionHint, menuHint string) (*Result, error) {
	query := joinNonEmpty(regionHint, name, menuHint)
	places, err := m.searcher.KeywordSearch(ctx, query, m.pageSize)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		m.logger.Debug("no candidates returned", logging.String("query", query))
		return nil, nil
	}

	best := places[0]
	bestScore := m.scoreCandidate(best, name, regionHint)
	for _, place := range places[1:] {
		// Strict comparison keeps the provider's original order on ties.
		if score := m.scoreCandidate(place, name, regionHint); score > bestScore {
			best = place
			bestScore = score
		}
	}

	result := &Result{
		Place:    best,
		Score:    bestScore,
		Status:   m.classify(bestScore),
		MenuHint: strings.TrimSpace(menuHint),
	}
	m.logger.Debug("candidate selected",
		logging.String("query", query),
		logging.String("place_id", best.ID),
		logging.String("place_name", best.Name),
		logging.Int("score", bestScore),
		logging.String("status", string(result.Status)))
	return result, nil
}

func (m *Matcher) scoreCandidate(place kakao.Place, name, regionHint string) int {
	score := m.scoreName(place.Name, name)
	score += m.scoreRegion(place, regionHint)
	score += m.scoreCategory(place)
	return score
}

func (m *Matcher) scoreName(candidate, wanted string) int {
	stripped := stripWhitespace(candidate)
	wantedStripped := stripWhitespace(wanted)
	switch {
	case wantedStripped == "":
		return 0
	case stripped == wantedStripped:
		return m.weights.NameExact
	case strings.Contains(stripped, wantedStripped), strings.Contains(wantedStripped, stripped):
		return m.weights.NameContains
	default:
		return 0
	}
}

func (m *Matcher) scoreRegion(place kakao.Place, regionHint string) int {
	hint := strings.TrimSpace(regionHint)
	if hint == "" {
		// No hint supplied is neutral, not penalized.
		return m.weights.RegionNeutral
	}
	if strings.Contains(place.Address, hint) || strings.Contains(place.RoadAddress, hint) {
		return m.weights.RegionMatch
	}
	return 0
}

func (m *Matcher) scoreCategory(place kakao.Place) int {
	switch {
	case place.CategoryGroupCode == "FD6", strings.Contains(place.CategoryPath, "음식점"):
		return m.weights.CategoryRestaurant
	case place.CategoryGroupCode == "CE7", strings.Contains(place.CategoryPath, "카페"):
		return m.weights.CategoryCafe
	default:
		return 0
	}
}

func (m *Matcher) classify(score int) Status {
	switch {
	case score >= m.weights.ApproveThreshold:
		return StatusApproved
	case score >= m.weights.ReviewThreshold:
		return StatusReview
	default:
		return StatusRejected
	}
}

// VerifyAddressInText reports whether any address token of at least two runes
// appears verbatim in the supplied free text. It is a supplementary
// cross-check; the pipeline logs the result but does not gate on it.
func VerifyAddressInText(place kakao.Place, text string) bool {
	for _, token := range strings.Fields(place.Address) {
		if utf8.RuneCountInString(token) < 2 {
			continue
		}
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " ")
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
