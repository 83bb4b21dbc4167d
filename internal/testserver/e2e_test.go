package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/transport"
	"github.com/stretchr/testify/require"
)

func (ts *TestServer) rpc(t *testing.T, method string, params any) transport.Response {
	t.Helper()
	body := map[string]any{"jsonrpc": "2.0", "method": method, "id": 1}
	if params != nil {
		body["params"] = params
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.Token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out transport.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (ts *TestServer) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+ts.Token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestE2E_AddExportImport(t *testing.T) {
	ts := New(t, "secret")

	out := ts.rpc(t, "add_slab", map[string]any{"width": 18, "block_number": "BLK-102", "length": "96"})
	require.Nil(t, out.Error)
	added := out.Result.(map[string]any)
	require.Equal(t, 12.0, added["sqft"])

	out = ts.rpc(t, "add_slab", map[string]any{"block_number": "", "length": "96"})
	require.NotNil(t, out.Error)
	require.Equal(t, transport.ErrApplication, out.Error.Code)
	require.Equal(t, "Block number required", out.Error.Message)

	resp, csv := ts.get(t, "/export.csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], `"BLK-102",96,8.00,12,`)

	out = ts.rpc(t, "import_json", map[string]any{"payload": `[{"id":"imp","blockNumber":"IMP-1","width":12,"length":12,"sqft":1}]`})
	require.Nil(t, out.Error)
	require.Equal(t, []string{"Block number required", "Import complete"}, ts.Notices.Messages())

	out = ts.rpc(t, "list_block_numbers", nil)
	require.Nil(t, out.Error)
	require.Equal(t, []any{"IMP-1", "BLK-102"}, out.Result.(map[string]any)["block_numbers"])

	out = ts.rpc(t, "export_csv", map[string]any{"deliver": true})
	require.Nil(t, out.Error)
	location := out.Result.(map[string]any)["location"].(string)
	require.Equal(t, filepath.Join(ts.Exports, slab.ExportFileName), location)
	data, err := os.ReadFile(location)
	require.NoError(t, err)
	require.Equal(t, ts.App.Inventory.ExportCSV(), string(data))

	var persisted string
	require.NoError(t, ts.DB.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, slab.SlabsKey).Scan(&persisted))
	require.Contains(t, persisted, `"blockNumber":"IMP-1"`)
}

func TestE2E_AuthAndHealth(t *testing.T) {
	ts := New(t, "secret")

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.Server.URL + "/export.csv")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestE2E_Metrics(t *testing.T) {
	ts := New(t, "secret")
	ts.rpc(t, "add_slab", map[string]any{"block_number": "M-1", "length": "12"})
	ts.rpc(t, "add_slab", map[string]any{"block_number": "M-2", "length": "x"})

	resp, body := ts.get(t, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "slabstock_slabs_added_total 1")
	require.Contains(t, body, `slabstock_validation_failures_total{kind="INVALID_LENGTH"} 1`)
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(r)
}

func TestE2E_StreamableMCP(t *testing.T) {
	ts := New(t, "secret")
	ctx := context.Background()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "e2e", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: ts.Token, base: http.DefaultTransport}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "add_slab",
		Arguments: map[string]any{"width": 30, "block_number": "MCP-1", "length": "100"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_stats", Arguments: map[string]any{}})
	require.NoError(t, err)
	text := res.Content[0].(*sdkmcp.TextContent).Text
	require.JSONEq(t, `{"slabs":1,"total_sqft":20.83,"block_numbers":1}`, text)
}
