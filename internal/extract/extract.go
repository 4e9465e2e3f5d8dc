// Package extract derives a (store name, region hint) candidate pair from raw
// video description text. Parsing is pure and fails closed: when either signal
// is missing the description is rejected rather than guessed at.
package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Description is the parse result for one video description.
type Description struct {
	StoreName  string
	RegionHint string
	Pass       bool
}

// minDescriptionRunes is the floor below which descriptions carry too little
// signal to bother parsing.
const minDescriptionRunes = 20

// regionPattern matches a province name directly followed by a locality token
// ending in a city/county/district/neighborhood/road suffix, e.g. "서울 중구"
// or "경기 수원시".
var regionPattern = regexp.MustCompile(
	`(서울|부산|대구|인천|광주|대전|울산|세종|경기|강원|충북|충남|전북|전남|경북|경남|제주)` +
		`(?:특별시|광역시|특별자치시|특별자치도|도)?` +
		`\s?([가-힣]+(?:시|군|구|동|읍|면|로|길)[0-9]*)`)

// namePatterns are tried in priority order against each line. The first match
// in the topmost matching line wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[([^\[\]]+)\]`),
	regexp.MustCompile(`(?:상호|가게|식당|맛집)\s*[:：]\s*([^\n]+)`),
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`'([^']+)'`),
	regexp.MustCompile(`\(([^()]+)\)`),
	regexp.MustCompile(`\{([^{}]+)\}`),
	regexp.MustCompile(`([가-힣A-Za-z0-9]{2,})\s?(?:본점|지점|[0-9]+호점)`),
	regexp.MustCompile(`#([가-힣A-Za-z0-9_]{2,})`),
}

// Parse extracts a candidate store name and region hint from raw description
// text. Both must be found for the description to pass.
func Parse(raw string) Description {
	text := norm.NFC.String(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if utf8.RuneCountInString(strings.TrimSpace(text)) < minDescriptionRunes {
		return Description{}
	}

	region := findRegion(text)
	name := findStoreName(text)

	return Description{
		StoreName:  name,
		RegionHint: region,
		Pass:       name != "" && region != "",
	}
}

func findRegion(text string) string {
	match := regionPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1] + " " + strings.TrimRight(match[2], "0123456789")
}

func findStoreName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, pattern := range namePatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			candidate := strings.TrimSpace(match[1])
			if utf8.RuneCountInString(candidate) < 2 {
				continue
			}
			return candidate
		}
	}
	return ""
}

// CleanSearchTerm strips decorative characters (emoji, symbols) before a term
// is sent to the place-search provider, which handles them poorly. Hangul,
// letters, digits, and single spaces survive.
func CleanSearchTerm(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	lastSpace := false
	for _, r := range term {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
