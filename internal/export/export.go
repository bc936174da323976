// Package export renders grid contents as text.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/five82/tablegrid/internal/datatype"
)

// Projector is a grid that can list its visible rows as formatted text.
type Projector interface {
	Projection() (headers []string, rows [][]string)
}

// Text writes the visible columns and rows of g as a text table. Rows keep
// the grid's current sort and filter.
func Text(w io.Writer, g Projector) error {
	headers, rows := g.Projection()
	cfg := tablewriter.NewConfigBuilder().
		WithHeaderAutoFormat(tw.Off).
		WithHeaderAlignment(tw.AlignLeft).
		WithRowAlignment(tw.AlignLeft).
		Build()
	table := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ")

// TSV joins values with tabs and newlines. Tabs and line breaks inside a
// value become spaces and nil values are empty.
func TSV(values [][]any) string {
	var b strings.Builder
	for i, line := range values {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, v := range line {
			if j > 0 {
				b.WriteByte('\t')
			}
			if v != nil {
				b.WriteString(tsvEscaper.Replace(datatype.ToString(v)))
			}
		}
	}
	return b.String()
}
