package mcp

import "github.com/rpggio/slabstock/internal/domain/slab"

// AddSlabParams are the arguments of add_slab.
type AddSlabParams struct {
	Color       string  `json:"color,omitempty" jsonschema:"Slab color. Defaults to the first catalog color."`
	Width       float64 `json:"width,omitempty" jsonschema:"Slab width in inches. Defaults to the first catalog width."`
	BlockNumber string  `json:"block_number" jsonschema:"Quarry block number, required"`
	Length      string  `json:"length" jsonschema:"Slab length in inches as a decimal string, for example 96 or 97.5"`
}

// DeleteSlabParams are the arguments of delete_slab.
type DeleteSlabParams struct {
	ID      string `json:"id" jsonschema:"Slab ID"`
	Confirm bool   `json:"confirm,omitempty" jsonschema:"Must be true to delete"`
}

// DeleteSlabResponse reports whether a slab was removed.
type DeleteSlabResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ListSlabsParams are the arguments of list_slabs.
type ListSlabsParams struct {
	BlockNumber string `json:"block_number,omitempty" jsonschema:"Only return slabs cut from this block"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Maximum number of slabs to return"`
}

// ListSlabsResponse is the body of list_slabs.
type ListSlabsResponse struct {
	Slabs []slab.Slab `json:"slabs"`
	Total int         `json:"total"`
}

// BlockNumbersResponse is the body of list_block_numbers.
type BlockNumbersResponse struct {
	BlockNumbers []string `json:"block_numbers"`
}

// ExportCSVParams are the arguments of export_csv.
type ExportCSVParams struct {
	Deliver bool `json:"deliver,omitempty" jsonschema:"Also hand the file to the configured export destination"`
}

// ExportCSVResponse carries the rendered CSV.
type ExportCSVResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	CSV         string `json:"csv"`
	Location    string `json:"location,omitempty"`
}

// ImportJSONParams are the arguments of import_json.
type ImportJSONParams struct {
	Payload string `json:"payload" jsonschema:"JSON text: an array of slab objects"`
}

// ImportJSONResponse is the body of import_json.
type ImportJSONResponse struct {
	slab.ImportResult
	Message string `json:"message"`
}

// CopySlabParams are the arguments of copy_slab.
type CopySlabParams struct {
	ID string `json:"id" jsonschema:"Slab ID"`
}

// CatalogResponse lists the form options.
type CatalogResponse struct {
	Colors []string  `json:"colors"`
	Widths []float64 `json:"widths"`
}

// EmptyParams is used by tools without arguments.
type EmptyParams struct{}
