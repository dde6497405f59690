package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ekisa-team/modelhandler/internal/table"
)

func renderTable(w io.Writer, t *table.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns())
	tw.SetAutoFormatHeaders(false)
	tw.SetCaption(true, fmt.Sprintf("%d Rows", t.NumRows()))
	tw.SetBorder(false)
	for _, row := range t.Rows() {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		tw.Append(cells)
	}
	tw.Render()
}

func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.RawMessage:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
