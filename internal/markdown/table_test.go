package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTablesAligns(t *testing.T) {
	input := strings.Join([]string{
		"before",
		"| Name | Amount |",
		"|---|---|",
		"| Acme Robotics | $50M |",
		"| Bit | $1M |",
		"after",
	}, "\n")

	want := strings.Join([]string{
		"before",
		"| Name          | Amount |",
		"| ------------- | ------ |",
		"| Acme Robotics | $50M   |",
		"| Bit           | $1M    |",
		"after",
	}, "\n")

	assert.Equal(t, want, FormatTables(input))
}

func TestFormatTablesCJKWidth(t *testing.T) {
	input := strings.Join([]string{
		"| 名前 | Val |",
		"| --- | --- |",
		"| ab | x |",
	}, "\n")

	got := FormatTables(input)

	lines := strings.Split(got, "\n")
	// Every row renders to the same display width.
	assert.Len(t, lines, 3)
	assert.Equal(t, "| 名前 | Val |", lines[0])
	assert.Equal(t, "| ---- | --- |", lines[1])
	assert.Equal(t, "| ab   | x   |", lines[2])
}

func TestFormatTablesIgnoresNonTables(t *testing.T) {
	input := "plain text\n| lonely pipe line |\nmore text"

	assert.Equal(t, input, FormatTables(input))
}

func TestFormatTablesRaggedRows(t *testing.T) {
	input := strings.Join([]string{
		"| A | B | C |",
		"| --- | --- |",
		"| 1 |",
	}, "\n")

	got := FormatTables(input)

	for _, line := range strings.Split(got, "\n") {
		assert.True(t, strings.HasPrefix(line, "|"))
		assert.True(t, strings.HasSuffix(line, "|"))
	}
}
