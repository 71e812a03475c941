// Package formatter renders catalog summaries as markdown with display-width aligned tables.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minColumnWidth keeps separators at least "---".
const minColumnWidth = 3

// FormatMarkdown realigns every pipe table in a markdown document.
func FormatMarkdown(content string) string {
	lines := strings.Split(content, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, alignTable(parseRows(tableBuffer), tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, alignTable(parseRows(tableBuffer), tableBuffer)...)
	}

	return strings.Join(formattedLines, "\n")
}

// FormatTable builds an aligned markdown table. Cell text is flattened to one line and pipes are escaped.
func FormatTable(header []string, rows [][]string) []string {
	table := make([][]string, 0, len(rows)+2)
	table = append(table, escapeRow(header))
	table = append(table, make([]string, len(header)))

	for _, row := range rows {
		table = append(table, escapeRow(row))
	}

	return renderTable(table, 1)
}

func escapeRow(row []string) []string {
	out := make([]string, len(row))

	for i, cell := range row {
		cell = strings.Join(strings.Fields(cell), " ")
		out[i] = strings.ReplaceAll(cell, "|", `\|`)
	}

	return out
}

func parseRows(rows []string) [][]string {
	table := make([][]string, 0, len(rows))

	for _, row := range rows {
		parts := strings.Split(row, "|")

		if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
			parts = parts[1:]
		}

		if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
			parts = parts[:len(parts)-1]
		}

		cells := make([]string, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}

		table = append(table, cells)
	}

	return table
}

// alignTable returns the original rows when they do not form a header plus separator.
func alignTable(table [][]string, original []string) []string {
	if len(table) < 2 || !isSeparator(table[1]) {
		return original
	}

	return renderTable(table, 1)
}

func isSeparator(row []string) bool {
	for _, cell := range row {
		trim := strings.NewReplacer("-", "", ":", "", " ", "").Replace(cell)
		if trim != "" {
			return false
		}
	}

	return true
}

func renderTable(table [][]string, separatorRowIdx int) []string {
	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	for i := range colWidths {
		colWidths[i] = max(colWidths[i], minColumnWidth)
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(runewidth.FillRight(content, colWidths[j]))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
