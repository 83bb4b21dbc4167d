package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/ui"
)

// Inventory defines the read operations needed by MCP. Mutations go through
// the ui.Controller so notifications and logging match the CLI.
type Inventory interface {
	List() []slab.Slab
	BlockNumbers() []string
	Stats() slab.Stats
	ExportCSV() string
}

// Handler dispatches inventory commands.
type Handler struct {
	inventory  Inventory
	controller *ui.Controller
	catalog    ui.Catalog
}

// NewHandler creates a new MCP handler.
func NewHandler(inventory Inventory, controller *ui.Controller, catalog ui.Catalog) *Handler {
	return &Handler{
		inventory:  inventory,
		controller: controller,
		catalog:    catalog.Normalize(),
	}
}

// Methods lists the names accepted by Handle.
var Methods = []string{
	"add_slab",
	"delete_slab",
	"list_slabs",
	"list_block_numbers",
	"export_csv",
	"import_json",
	"copy_slab",
	"get_stats",
	"get_catalog",
}

// Handle dispatches requests to the inventory by method name.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "add_slab":
		var req AddSlabParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.AddSlab(ctx, req)
	case "delete_slab":
		var req DeleteSlabParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.DeleteSlab(ctx, req)
	case "list_slabs":
		var req ListSlabsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ListSlabs(req), nil
	case "list_block_numbers":
		return h.ListBlockNumbers(), nil
	case "export_csv":
		var req ExportCSVParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ExportCSV(ctx, req)
	case "import_json":
		var req ImportJSONParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ImportJSON(ctx, req)
	case "copy_slab":
		var req CopySlabParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.CopySlab(req)
	case "get_stats":
		return h.inventory.Stats(), nil
	case "get_catalog":
		return CatalogResponse{Colors: h.catalog.Colors, Widths: h.catalog.Widths}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

// AddSlab fills a fresh form and submits it.
func (h *Handler) AddSlab(ctx context.Context, req AddSlabParams) (*slab.Slab, error) {
	form := ui.NewForm(h.catalog)
	if req.Color != "" {
		form.Color = req.Color
	}
	if req.Width != 0 {
		form.Width = req.Width
	}
	form.BlockNumber = req.BlockNumber
	form.Length = req.Length

	rec, err := h.controller.Submit(ctx, form)
	if err != nil {
		return nil, mapError(err)
	}
	return rec, nil
}

// DeleteSlab removes a slab. The caller confirms through the confirm argument.
func (h *Handler) DeleteSlab(ctx context.Context, req DeleteSlabParams) (DeleteSlabResponse, error) {
	if !req.Confirm {
		return DeleteSlabResponse{}, mapError(ErrConfirmationRequired)
	}
	deleted, err := h.controller.Delete(ctx, req.ID, func(string) (bool, error) { return true, nil })
	if err != nil {
		return DeleteSlabResponse{}, mapError(err)
	}
	return DeleteSlabResponse{ID: req.ID, Deleted: deleted}, nil
}

// ListSlabs returns slabs most recent first.
func (h *Handler) ListSlabs(req ListSlabsParams) ListSlabsResponse {
	all := h.inventory.List()
	out := make([]slab.Slab, 0, len(all))
	filter := strings.TrimSpace(req.BlockNumber)
	for _, rec := range all {
		if filter != "" && rec.BlockNumber != filter {
			continue
		}
		out = append(out, rec)
		if req.Limit > 0 && len(out) == req.Limit {
			break
		}
	}
	return ListSlabsResponse{Slabs: out, Total: len(all)}
}

// ListBlockNumbers returns the remembered block numbers.
func (h *Handler) ListBlockNumbers() BlockNumbersResponse {
	return BlockNumbersResponse{BlockNumbers: h.inventory.BlockNumbers()}
}

// ExportCSV renders the inventory, optionally delivering the file.
func (h *Handler) ExportCSV(ctx context.Context, req ExportCSVParams) (ExportCSVResponse, error) {
	resp := ExportCSVResponse{
		FileName:    slab.ExportFileName,
		ContentType: slab.ExportMIMEType,
		CSV:         h.inventory.ExportCSV(),
	}
	if req.Deliver {
		where, err := h.controller.Export(ctx)
		if err != nil {
			return ExportCSVResponse{}, err
		}
		resp.Location = where
	}
	return resp, nil
}

// ImportJSON merges a JSON array of slabs into the inventory.
func (h *Handler) ImportJSON(ctx context.Context, req ImportJSONParams) (ImportJSONResponse, error) {
	result, err := h.controller.Import(ctx, strings.NewReader(req.Payload))
	if err != nil {
		return ImportJSONResponse{}, mapError(err)
	}
	return ImportJSONResponse{ImportResult: result, Message: ui.MsgImportComplete}, nil
}

// CopySlab returns the slab JSON, placing it on the clipboard when one exists.
func (h *Handler) CopySlab(req CopySlabParams) (ui.CopyResult, error) {
	result, err := h.controller.Copy(req.ID)
	if err != nil {
		return ui.CopyResult{}, mapError(err)
	}
	return result, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
