package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolCatalog returns all available MCP tools. Input schemas are inferred
// from the parameter types when the tool is registered.
func toolCatalog() []*sdkmcp.Tool {
	return []*sdkmcp.Tool{
		{
			Name:        "add_slab",
			Description: "Record a new granite slab. Square feet are computed from length and width (inches).",
		},
		{
			Name:        "delete_slab",
			Description: "Delete a slab by ID. Requires confirm=true; unknown IDs are a no-op.",
		},
		{
			Name:        "list_slabs",
			Description: "List slabs in stock, most recent first, optionally filtered by block number",
		},
		{
			Name:        "list_block_numbers",
			Description: "List remembered block numbers, most recent first",
		},
		{
			Name:        "export_csv",
			Description: "Render the inventory as CSV (granite_slabs_export.csv)",
		},
		{
			Name:        "import_json",
			Description: "Prepend slabs from a JSON array and merge their block numbers",
		},
		{
			Name:        "copy_slab",
			Description: "Return one slab as compact JSON",
		},
		{
			Name:        "get_stats",
			Description: "Count slabs, total square feet and known block numbers",
		},
		{
			Name:        "get_catalog",
			Description: "List the slab colors and widths offered by the entry form",
		},
	}
}

func toolByName(name string) *sdkmcp.Tool {
	for _, tool := range toolCatalog() {
		if tool.Name == name {
			return tool
		}
	}
	panic(fmt.Sprintf("mcp: unknown tool %q", name))
}

// registerTools adds every tool in the catalog to server.
func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, toolByName("add_slab"), func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddSlabParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.AddSlab(ctx, in))
	})
	sdkmcp.AddTool(server, toolByName("delete_slab"), func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteSlabParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.DeleteSlab(ctx, in))
	})
	sdkmcp.AddTool(server, toolByName("list_slabs"), func(_ context.Context, _ *sdkmcp.CallToolRequest, in ListSlabsParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.ListSlabs(in), nil)
	})
	sdkmcp.AddTool(server, toolByName("list_block_numbers"), func(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.ListBlockNumbers(), nil)
	})
	sdkmcp.AddTool(server, toolByName("export_csv"), func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ExportCSVParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.ExportCSV(ctx, in))
	})
	sdkmcp.AddTool(server, toolByName("import_json"), func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ImportJSONParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.ImportJSON(ctx, in))
	})
	sdkmcp.AddTool(server, toolByName("copy_slab"), func(_ context.Context, _ *sdkmcp.CallToolRequest, in CopySlabParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.CopySlab(in))
	})
	sdkmcp.AddTool(server, toolByName("get_stats"), func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.Handle(ctx, "get_stats", nil))
	})
	sdkmcp.AddTool(server, toolByName("get_catalog"), func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
		return toolResult(h.Handle(ctx, "get_catalog", nil))
	})
}

// toolResult encodes a handler result as JSON text content. Domain errors
// become tool errors carrying the APIError body so the model can recover.
func toolResult(value any, err error) (*sdkmcp.CallToolResult, any, error) {
	if err != nil {
		body := any(err.Error())
		if apiErr := MapError(err); apiErr != nil {
			body = apiErr
		}
		data, mErr := json.Marshal(body)
		if mErr != nil {
			return nil, nil, mErr
		}
		return &sdkmcp.CallToolResult{
			IsError: true,
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		}, nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
