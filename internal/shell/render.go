package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tuannm99/minisql/internal/record"
	"github.com/tuannm99/minisql/internal/sql/executor"
)

// FormatResult renders res the way the shell prints it: the message for DDL
// and DML, a bordered table for queries.
func FormatResult(res *executor.Result) string {
	if !res.IsQuery() {
		return res.Message
	}
	if len(res.Rows) == 0 {
		return "No rows returned"
	}
	return formatTable(res.Columns, res.Rows)
}

// FormatValue is the display form of a single cell.
func FormatValue(v record.Value) string {
	switch v.Kind() {
	case record.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case record.KindFloat:
		return fmt.Sprintf("%.2f", v.Float())
	case record.KindText:
		return v.Text()
	default:
		return "NULL"
	}
}

func formatTable(cols []string, rows [][]record.Value) string {
	// 1) compute widths
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i := range cols {
			s := "NULL"
			if i < len(row) {
				s = FormatValue(row[i])
			}
			cells[r][i] = s
			if w := lipgloss.Width(s); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	border := func() {
		b.WriteByte('+')
		for _, w := range widths {
			b.WriteString(strings.Repeat("-", w+2))
			b.WriteByte('+')
		}
		b.WriteByte('\n')
	}
	line := func(values []string) {
		b.WriteByte('|')
		for i, v := range values {
			b.WriteByte(' ')
			b.WriteString(padRight(v, widths[i]))
			b.WriteString(" |")
		}
		b.WriteByte('\n')
	}

	// 2) header
	border()
	line(cols)
	border()

	// 3) rows
	for _, row := range cells {
		line(row)
	}
	border()

	fmt.Fprintf(&b, "%d row(s) returned\n", len(rows))
	return b.String()
}

func padRight(s string, w int) string {
	n := lipgloss.Width(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}
