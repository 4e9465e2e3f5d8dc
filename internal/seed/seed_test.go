package seed_test

import (
	"math/rand"
	"strings"
	"testing"

	"tubemap/internal/seed"
	"tubemap/internal/testsupport"
)

func TestGenerateJoinsSourceAndAction(t *testing.T) {
	lex := testsupport.MustLexicon(t)
	gen := seed.New(lex, rand.New(rand.NewSource(1)), seed.DefaultWeights())

	s := gen.Generate()
	if s.Query == "" || s.Source == "" {
		t.Fatalf("incomplete seed: %#v", s)
	}
	if !strings.HasPrefix(s.Query, s.Source+" ") {
		t.Errorf("query %q should start with source %q", s.Query, s.Source)
	}
}

func TestGenerateRespectsWeights(t *testing.T) {
	lex := testsupport.MustLexicon(t)

	regionOnly := seed.New(lex, rand.New(rand.NewSource(7)), seed.Weights{Region: 100})
	for i := 0; i < 20; i++ {
		if s := regionOnly.Generate(); s.Type != seed.TypeRegion {
			t.Fatalf("seed %d type = %s, want region", i, s.Type)
		}
	}

	channelOnly := seed.New(lex, rand.New(rand.NewSource(7)), seed.Weights{Channel: 100})
	for i := 0; i < 20; i++ {
		if s := channelOnly.Generate(); s.Type != seed.TypeChannel {
			t.Fatalf("seed %d type = %s, want channel", i, s.Type)
		}
	}
}

func TestGenerateCoversAllPoolsOverManyDraws(t *testing.T) {
	lex := testsupport.MustLexicon(t)
	gen := seed.New(lex, rand.New(rand.NewSource(42)), seed.DefaultWeights())

	seen := map[seed.Type]bool{}
	for i := 0; i < 200; i++ {
		seen[gen.Generate().Type] = true
	}
	for _, want := range []seed.Type{seed.TypeRegion, seed.TypeChannel, seed.TypeProgram} {
		if !seen[want] {
			t.Errorf("seed type %s never drawn in 200 attempts", want)
		}
	}
}
