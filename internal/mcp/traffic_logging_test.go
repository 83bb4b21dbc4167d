package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/slabstock/internal/ui"
	"github.com/stretchr/testify/require"
)

func TestFormatPayload(t *testing.T) {
	require.Equal(t, "<nil>", formatPayload(nil))
	require.Equal(t, `{"a":1}`, formatPayload(map[string]int{"a": 1}))
	require.Equal(t, "chan int", formatPayload(make(chan int)))

	long := formatPayload(strings.Repeat("x", maxLoggedPayload*2))
	require.True(t, strings.HasSuffix(long, "("+strconv.Itoa(maxLoggedPayload*2+2)+" bytes)"))
	require.Less(t, len(long), maxLoggedPayload+32)
}

func TestToolName(t *testing.T) {
	require.Equal(t, "add_slab", toolName(&sdkmcp.CallToolParamsRaw{Name: "add_slab"}))
	require.Equal(t, "get_stats", toolName(&sdkmcp.CallToolParams{Name: "get_stats"}))
	require.Empty(t, toolName(&sdkmcp.ListToolsParams{}))
	require.Empty(t, toolName(nil))
}

func TestTrafficLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := context.Background()
	h, _ := newTestHandler(t, ui.Deps{})
	server := NewServer(Config{Handler: h, TransportMode: "stdio", Logger: logger})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	callTool(t, session, "add_slab", map[string]any{"block_number": " ", "length": "96"})

	out := buf.String()
	require.Contains(t, out, "msg=\"mcp request\"")
	require.Contains(t, out, "tool=add_slab")
	require.Contains(t, out, "tool_error=true")
}
