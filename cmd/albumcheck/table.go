package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type tableColumn struct {
	title string
	align text.Align
}

func leftColumn(title string) tableColumn  { return tableColumn{title: title, align: text.AlignLeft} }
func rightColumn(title string) tableColumn { return tableColumn{title: title, align: text.AlignRight} }

// textTable collects rows for a rounded go-pretty table. Rows shorter than the
// column list are padded with empty cells.
type textTable struct {
	columns []tableColumn
	rows    []table.Row
}

func newTable(columns ...tableColumn) *textTable {
	return &textTable{columns: columns}
}

func (t *textTable) row(cells ...string) {
	r := make(table.Row, len(t.columns))
	for i := range r {
		r[i] = ""
		if i < len(cells) {
			r[i] = cells[i]
		}
	}
	t.rows = append(t.rows, r)
}

func (t *textTable) render() string {
	if len(t.columns) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(t.columns))
	configs := make([]table.ColumnConfig, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.title
		configs[i] = table.ColumnConfig{Number: i + 1, Align: col.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.AppendRows(t.rows)
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
