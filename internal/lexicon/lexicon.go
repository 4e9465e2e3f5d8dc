// Package lexicon holds the keyword sets driving candidate filtering, channel
// admission, and seed generation. Operators may override the embedded defaults
// with a YAML file so deployments can retune without rebuilding.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_lexicon.yaml
var defaultLexiconYAML []byte

// Lexicon captures every keyword class the pipeline consults.
type Lexicon struct {
	// Regions are place keywords awarding the region filter weight.
	Regions []string `yaml:"regions"`
	// Food are food/menu keywords awarding the food filter weight.
	Food []string `yaml:"food"`
	// Visit are visit/action keywords awarding the visit filter weight.
	Visit []string `yaml:"visit"`
	// Veto keywords reject a video outright when found in the title.
	Veto []string `yaml:"veto"`
	// Channels is the allow-list of approved channel titles.
	Channels []string `yaml:"channels"`
	// Programs are broadcast shows used for seed queries.
	Programs []string `yaml:"programs"`
	// Actions are the phrases appended to seed queries.
	Actions []string `yaml:"actions"`
}

// Default returns the embedded lexicon.
func Default() (*Lexicon, error) {
	return parse(defaultLexiconYAML)
}

// Load reads a lexicon from path, or returns the embedded defaults when path
// is empty.
func Load(path string) (*Lexicon, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	lex.trim()
	if err := lex.validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

func (l *Lexicon) trim() {
	for _, set := range []*[]string{&l.Regions, &l.Food, &l.Visit, &l.Veto, &l.Channels, &l.Programs, &l.Actions} {
		cleaned := (*set)[:0]
		for _, entry := range *set {
			if trimmed := strings.TrimSpace(entry); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		*set = cleaned
	}
}

func (l *Lexicon) validate() error {
	var missing []string
	if len(l.Regions) == 0 {
		missing = append(missing, "regions")
	}
	if len(l.Food) == 0 {
		missing = append(missing, "food")
	}
	if len(l.Visit) == 0 {
		missing = append(missing, "visit")
	}
	if len(l.Channels) == 0 {
		missing = append(missing, "channels")
	}
	if len(missing) > 0 {
		return fmt.Errorf("lexicon: empty keyword sets: %s", strings.Join(missing, ", "))
	}
	return nil
}

// AllowsChannel reports whether a channel title fuzzy-matches the allow-list.
// Matching is case-insensitive substring containment in either direction.
func (l *Lexicon) AllowsChannel(channelTitle string) bool {
	title := strings.ToLower(strings.TrimSpace(channelTitle))
	if title == "" {
		return false
	}
	for _, entry := range l.Channels {
		allowed := strings.ToLower(entry)
		if strings.Contains(title, allowed) || strings.Contains(allowed, title) {
			return true
		}
	}
	return false
}
