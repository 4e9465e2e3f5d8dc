package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"tubemap/internal/catalog"
)

// columnSpec shapes one table column. Numeric columns right-align, wide
// columns wrap long values (skip reasons, addresses), and status columns
// colorize ledger statuses when stdout is a terminal.
type columnSpec struct {
	title    string
	numeric  bool
	status   bool
	maxWidth int
}

func column(title string) columnSpec { return columnSpec{title: title} }

func numericColumn(title string) columnSpec { return columnSpec{title: title, numeric: true} }

func statusColumn(title string) columnSpec { return columnSpec{title: title, status: true} }

func wideColumn(title string, maxWidth int) columnSpec {
	return columnSpec{title: title, maxWidth: maxWidth}
}

func renderTable(columns []columnSpec, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col.title
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	colorize := isatty.IsTerminal(os.Stdout.Fd())
	configs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
			WidthMax:    col.maxWidth,
		}
		if col.numeric {
			cfg.Align = text.AlignRight
		}
		if col.status && colorize {
			cfg.Transformer = statusCell
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func statusCell(value any) string {
	rendered := fmt.Sprint(value)
	switch catalog.ProcessedStatus(rendered) {
	case catalog.StatusProcessed:
		return text.FgGreen.Sprint(rendered)
	case catalog.StatusSkipped:
		return text.FgYellow.Sprint(rendered)
	case catalog.StatusFailed:
		return text.FgRed.Sprint(rendered)
	}
	return rendered
}
