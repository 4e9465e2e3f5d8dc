package catalog_test

import (
	"testing"

	"tubemap/internal/catalog"
)

func TestParseProcessedStatus(t *testing.T) {
	cases := []struct {
		in   string
		want catalog.ProcessedStatus
		ok   bool
	}{
		{"processed", catalog.StatusProcessed, true},
		{" Skipped ", catalog.StatusSkipped, true},
		{"FAILED", catalog.StatusFailed, true},
		{"", "", false},
		{"banana", "banana", false},
	}
	for _, tc := range cases {
		got, ok := catalog.ParseProcessedStatus(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseProcessedStatus(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseProcessedStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
