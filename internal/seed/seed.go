// Package seed produces randomized discovery queries when no explicit target
// is supplied, spreading load across regions, channels, and broadcast
// programs so the search provider is not hit with the same few queries.
package seed

import (
	"math/rand"

	"tubemap/internal/lexicon"
)

// Type identifies which pool a seed query was drawn from.
type Type string

const (
	TypeRegion  Type = "region"
	TypeChannel Type = "channel"
	TypeProgram Type = "program"
)

// Seed is one generated search query.
type Seed struct {
	Query  string
	Type   Type
	Source string
}

// Weights control the three-way split between seed pools, in percent.
type Weights struct {
	Region  int
	Channel int
	Program int
}

// DefaultWeights mirrors the batch-runner split: regions rarely, channels and
// programs evenly.
func DefaultWeights() Weights {
	return Weights{Region: 10, Channel: 45, Program: 45}
}

// Generator builds seed queries from the lexicon pools. It holds no state
// beyond its random source.
type Generator struct {
	lex     *lexicon.Lexicon
	rng     *rand.Rand
	weights Weights
}

// New constructs a Generator with the supplied random source so tests can fix
// the sequence.
func New(lex *lexicon.Lexicon, rng *rand.Rand, weights Weights) *Generator {
	if weights.Region+weights.Channel+weights.Program <= 0 {
		weights = DefaultWeights()
	}
	return &Generator{lex: lex, rng: rng, weights: weights}
}

// Generate draws one seed query.
func (g *Generator) Generate() Seed {
	total := g.weights.Region + g.weights.Channel + g.weights.Program
	roll := g.rng.Intn(total)

	var (
		pool     []string
		seedType Type
	)
	switch {
	case roll < g.weights.Region:
		pool, seedType = g.lex.Regions, TypeRegion
	case roll < g.weights.Region+g.weights.Channel:
		pool, seedType = g.lex.Channels, TypeChannel
	default:
		pool, seedType = g.lex.Programs, TypeProgram
	}
	if len(pool) == 0 {
		pool, seedType = g.lex.Regions, TypeRegion
	}

	source := pool[g.rng.Intn(len(pool))]
	query := source
	if len(g.lex.Actions) > 0 {
		query = source + " " + g.lex.Actions[g.rng.Intn(len(g.lex.Actions))]
	}

	return Seed{Query: query, Type: seedType, Source: source}
}
