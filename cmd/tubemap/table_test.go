package main

import (
	"strings"
	"testing"
)

func TestRenderTableAlignsAndWraps(t *testing.T) {
	out := renderTable(
		[]columnSpec{numericColumn("Total"), wideColumn("Reason", 12)},
		[][]string{{"7", "score 25 below threshold 50"}},
	)

	if !strings.Contains(out, "Total") || !strings.Contains(out, "Reason") {
		t.Fatalf("headers missing from output:\n%s", out)
	}
	if !strings.Contains(out, "    7 ") {
		t.Errorf("numeric column should right-align:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "score 25 below threshold 50") {
			t.Errorf("long reason should wrap at the column width: %q", line)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]columnSpec{column("Video"), column("Status")},
		[][]string{{"dQw4w9WgXcQ"}},
	)
	if !strings.Contains(out, "dQw4w9WgXcQ") {
		t.Fatalf("row value missing:\n%s", out)
	}
}

func TestRenderTableEmptyColumns(t *testing.T) {
	if out := renderTable(nil, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestStatusCellPassesThroughUnknownValues(t *testing.T) {
	if got := statusCell("pending"); got != "pending" {
		t.Fatalf("statusCell(pending) = %q", got)
	}
	if got := statusCell("processed"); !strings.Contains(got, "processed") {
		t.Fatalf("statusCell(processed) = %q", got)
	}
}
