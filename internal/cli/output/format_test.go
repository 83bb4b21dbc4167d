package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "table", input: "table", want: FormatTable},
		{name: "empty defaults to table", input: "", want: FormatTable},
		{name: "json uppercase", input: "JSON", want: FormatJSON},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "whitespace trimmed", input: "  yaml ", want: FormatYAML},
		{name: "invalid", input: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinter(t *testing.T) {
	data := []map[string]string{{"color": "Fantasy"}}
	table := NewTableData("Color")
	table.AddRow("Fantasy")

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable).Print(data, table))
		assert.Contains(t, buf.String(), "COLOR")
		assert.Contains(t, buf.String(), "Fantasy")
	})

	t.Run("table without renderer falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatTable).Print(data, nil))
		assert.Contains(t, buf.String(), `"color": "Fantasy"`)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPrinter(&buf, FormatJSON).Print(data, table))
		assert.Contains(t, buf.String(), `"color": "Fantasy"`)
		assert.NotContains(t, buf.String(), "COLOR")
	})

	t.Run("empty list message", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, FormatTable)
		require.NoError(t, p.PrintList([]string{}, true, "No slabs.", NewTableData("Color")))
		assert.Equal(t, "No slabs.\n", buf.String())
	})

	t.Run("empty list in json", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, FormatJSON)
		require.NoError(t, p.PrintList([]string{}, true, "No slabs.", nil))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("println is table only", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, FormatYAML).Println("hello")
		assert.Empty(t, buf.String())
	})
}
