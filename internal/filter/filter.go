// Package filter scores a video's title and description against weighted
// keyword classes to decide whether it is worth running through the full
// ingestion pipeline.
package filter

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"tubemap/internal/config"
	"tubemap/internal/lexicon"
	"tubemap/internal/logging"
)

// SkipKeywordPrefix tags rejections caused by an absolute veto keyword.
const SkipKeywordPrefix = "SKIP_KEYWORD"

// localitySuffixPattern complements the region keyword list: text mentioning
// any "<name>구/동/로/..." token counts as a region signal even when the
// specific place name is not in the lexicon.
var localitySuffixPattern = regexp.MustCompile(`[가-힣]{1,6}(?:시|군|구|동|읍|면|로|길)(?:\s|$|[^가-힣])`)

// Score is the evaluation result for one video.
type Score struct {
	Score  int
	Valid  bool
	Reason string
}

// Filter evaluates candidate videos against the configured keyword classes.
type Filter struct {
	weights config.Filter
	lex     *lexicon.Lexicon
	logger  *slog.Logger
}

// New constructs a Filter. A nil logger disables observability logging.
func New(weights config.Filter, lex *lexicon.Lexicon, logger *slog.Logger) *Filter {
	return &Filter{
		weights: weights,
		lex:     lex,
		logger:  logging.NewComponentLogger(logger, "filter"),
	}
}

// Evaluate scores the concatenated title and description. Veto keywords are
// checked against the title only and override any score.
func (f *Filter) Evaluate(title, description string) Score {
	loweredTitle := strings.ToLower(title)
	for _, veto := range f.lex.Veto {
		if strings.Contains(loweredTitle, strings.ToLower(veto)) {
			result := Score{Reason: fmt.Sprintf("%s: %s", SkipKeywordPrefix, veto)}
			f.logger.Debug("candidate vetoed",
				logging.String("keyword", veto),
				logging.String("title", strings.TrimSpace(title)))
			return result
		}
	}

	text := strings.ToLower(title + " " + description)

	var score int
	var matched []string
	if containsAny(text, f.lex.Regions) || localitySuffixPattern.MatchString(title+" "+description) {
		score += f.weights.RegionWeight
		matched = append(matched, "region")
	}
	if containsAny(text, f.lex.Food) {
		score += f.weights.FoodWeight
		matched = append(matched, "food")
	}
	if containsAny(text, f.lex.Visit) {
		score += f.weights.VisitWeight
		matched = append(matched, "visit")
	}

	result := Score{Score: score, Valid: score >= f.weights.Threshold}
	if !result.Valid {
		result.Reason = fmt.Sprintf("score %d below threshold %d", score, f.weights.Threshold)
	}
	f.logger.Debug("candidate evaluated",
		logging.Int("score", score),
		logging.Bool("valid", result.Valid),
		logging.String("classes", strings.Join(matched, ",")))
	return result
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
