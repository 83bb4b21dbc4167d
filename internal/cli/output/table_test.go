package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable(t *testing.T) {
	table := NewTableData("Block #", "Sq. Ft")
	table.AddRow("BLK-1", "8.00")
	table.AddRow("BLK-2", "12.50")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "BLOCK #")
	assert.Contains(t, lines[0], "SQ. FT")
	assert.Contains(t, lines[1], "BLK-1")
	assert.Contains(t, lines[2], "12.50")
}

func TestPrintKeyValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintKeyValues(&buf, [][2]string{
		{"Slabs", "2"},
		{"Total Sq. Ft", "20.50"},
	}))

	out := buf.String()
	assert.Contains(t, out, "Slabs")
	assert.Contains(t, out, "20.50")
	assert.NotContains(t, out, "SLABS")
}
