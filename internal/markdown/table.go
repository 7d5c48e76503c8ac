package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatTables realigns markdown tables so every column is padded to its
// widest cell. Width is measured as display width, which keeps CJK text in
// imported articles lined up. Non-table lines pass through untouched.
func FormatTables(content string) string {
	lines := strings.Split(content, "\n")

	var formatted []string

	var buffer []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
			buffer = append(buffer, line)

			continue
		}

		if len(buffer) > 0 {
			formatted = append(formatted, alignTable(buffer)...)
			buffer = nil
		}

		formatted = append(formatted, line)
	}

	if len(buffer) > 0 {
		formatted = append(formatted, alignTable(buffer)...)
	}

	return strings.Join(formatted, "\n")
}

func alignTable(rows []string) []string {
	// A lone pipe line has no header/separator pair to align.
	if len(rows) < 2 {
		return rows
	}

	var table [][]string

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

	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return rows
	}

	separatorIdx := -1
	if len(table) > 1 && isSeparatorRow(table[1]) {
		separatorIdx = 1
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorIdx {
			continue
		}

		for i := 0; i < len(row) && i < colCount; i++ {
			if w := runewidth.StringWidth(row[i]); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table))

	for rIdx, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if rIdx == separatorIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(content)

				if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
					sb.WriteString(strings.Repeat(" ", padding))
				}
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		trim := strings.ReplaceAll(cell, "-", "")
		trim = strings.ReplaceAll(trim, ":", "")
		trim = strings.ReplaceAll(trim, " ", "")

		if trim != "" {
			return false
		}
	}

	return true
}
