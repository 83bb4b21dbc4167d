package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ordered struct {
	Zeta  string `json:"zeta"`
	Alpha int    `json:"alpha"`
}

type custom struct{}

func (custom) MarshalJSON() ([]byte, error) {
	return json.RawMessage(`{"blockNumber":"B-1","extra":{"k":1}}`), nil
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, ordered{Zeta: "z", Alpha: 1}))
	assert.Equal(t, "{\n  \"zeta\": \"z\",\n  \"alpha\": 1\n}\n", buf.String())
}

func TestPrintYAML(t *testing.T) {
	t.Run("keeps json key order", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintYAML(&buf, ordered{Zeta: "z", Alpha: 1}))
		out := buf.String()
		assert.Contains(t, out, "alpha: 1")
		assert.NotContains(t, out, "{")
		assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))
	})

	t.Run("uses custom json marshalers", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintYAML(&buf, []custom{{}}))
		assert.Contains(t, buf.String(), "- blockNumber: \"B-1\"")
		assert.Contains(t, buf.String(), "k: 1")
	})
}
