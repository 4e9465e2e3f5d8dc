package lexicon_test

import (
	"os"
	"path/filepath"
	"testing"

	"tubemap/internal/lexicon"
)

func TestDefaultLexiconLoads(t *testing.T) {
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if len(lex.Regions) == 0 || len(lex.Food) == 0 || len(lex.Visit) == 0 {
		t.Fatal("default lexicon missing keyword classes")
	}
	if len(lex.Channels) == 0 {
		t.Fatal("default lexicon missing channel allow-list")
	}
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	data := []byte(`regions: ["서울"]
food: ["국밥"]
visit: ["방문"]
veto: ["레시피"]
channels: ["쯔양"]
programs: ["백반기행"]
actions: ["맛집"]
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}

	lex, err := lexicon.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(lex.Regions) != 1 || lex.Regions[0] != "서울" {
		t.Errorf("regions = %v", lex.Regions)
	}
}

func TestLoadRejectsEmptyRequiredClasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte(`food: ["국밥"]`), 0o644); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}
	if _, err := lexicon.Load(path); err == nil {
		t.Fatal("expected validation error for missing classes")
	}
}

func TestAllowsChannelFuzzyMatch(t *testing.T) {
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	cases := []struct {
		channel string
		want    bool
	}{
		{"성시경 SUNG SI KYUNG", true},
		{"성시경", true},
		{"sung si kyung", true},
		{"쯔양 공식 채널", true},
		{"Random Vlogger", false},
	}
	for _, tc := range cases {
		if got := lex.AllowsChannel(tc.channel); got != tc.want {
			t.Errorf("AllowsChannel(%q) = %v, want %v", tc.channel, got, tc.want)
		}
	}
}
