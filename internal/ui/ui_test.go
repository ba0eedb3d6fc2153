package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	pterm.DisableColor()
	color.NoColor = true

	var buf bytes.Buffer
	out, errOut := Out, Err
	Out, Err = &buf, &buf
	t.Cleanup(func() { Out, Err = out, errOut })
	return &buf
}

func TestPrintTable(t *testing.T) {
	buf := capture(t)

	require.NoError(t, PrintTable([]string{"id", "name"}, [][]string{{"1", "Ann"}, {"2", "NULL"}}, nil))

	out := buf.String()
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "2 rows")
}

func TestTableDimsOnlyNulls(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	data := tableData([]string{"note", "age"}, [][]string{{"NULL", "NULL"}, {"x", "3"}}, [][]bool{{false, true}})
	assert.Equal(t, []string{"note", "age"}, data[0])
	assert.Equal(t, "NULL", data[1][0], "text NULL stays plain")
	assert.Equal(t, nullColor.Sprint("NULL"), data[1][1])
	assert.NotEqual(t, "NULL", data[1][1])
	assert.Equal(t, []string{"x", "3"}, data[2])
}

func TestRowCount(t *testing.T) {
	assert.Equal(t, "0 rows", rowCount(0))
	assert.Equal(t, "1 row", rowCount(1))
	assert.Equal(t, "12 rows", rowCount(12))
}

func TestMarkdownTable(t *testing.T) {
	got := MarkdownTable([]string{"column", "note"}, [][]string{{"id", "a|b"}})
	assert.Equal(t, "| column | note |\n| --- | --- |\n| id | a\\|b |\n", got)
}

func TestMessages(t *testing.T) {
	buf := capture(t)

	PrintSuccess("created %s", "t")
	PrintError("failed: %d", 3)
	PrintKeyValue("engine", "sqlite3")
	PrintList([]string{"users"})

	out := buf.String()
	assert.Contains(t, out, "created t")
	assert.Contains(t, out, "failed: 3")
	assert.Contains(t, out, "engine: sqlite3")
	assert.Contains(t, out, "• users")
}
