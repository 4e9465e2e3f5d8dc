package testsupport

import (
	"testing"

	"tubemap/internal/catalog"
	"tubemap/internal/config"
	"tubemap/internal/lexicon"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustLexicon loads the built-in lexicon and fails the test on error.
func MustLexicon(t testing.TB) *lexicon.Lexicon {
	t.Helper()

	lex, err := lexicon.Default()
	if err != nil {
		t.Fatalf("lexicon.Default: %v", err)
	}
	return lex
}
