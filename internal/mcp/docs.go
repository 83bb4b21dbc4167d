package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `slabstock keeps a granite slab inventory: each slab has a color, a width and a
length in inches, a quarry block number, and square feet computed when it is added.

Workflow:
1) get_catalog lists the colors and widths the entry form offers.
2) add_slab records a slab. block_number and length are required; length is a decimal string.
3) list_slabs / get_stats show current stock, most recent first.
4) delete_slab needs confirm=true. Deleting an unknown ID changes nothing.
5) export_csv renders the CSV; import_json prepends slabs from a JSON array.
6) copy_slab returns one slab as JSON.

Errors come back as tool errors with a code (VALIDATION_ERROR, SLAB_NOT_FOUND,
CONFIRMATION_REQUIRED), a message and a recovery hint.

Docs:
- slabstock://docs/formats (JSON and CSV formats)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "slabstock://docs/formats",
		Name:        "docs_formats",
		Title:       "slabstock data formats",
		Description: "Slab JSON shape used for import and copy, and the CSV export columns.",
		Content: `# slabstock data formats

## Slab JSON

Import takes a JSON array of objects; copy_slab returns one object.

| key | type | notes |
|---|---|---|
| id | string | opaque, generated on add |
| color | string | |
| width | number | inches |
| blockNumber | string | |
| length | number | inches |
| sqft | number | round(length * width / 144, 2), never recomputed |
| createdAt | string | ISO-8601, UTC, milliseconds |

Other keys on imported entries are kept and written back unchanged.

Import rules:
- text that is not JSON is rejected as "Invalid JSON"
- JSON whose top level is not an array is rejected as "JSON must be array"
- an entry that is not an object, or has a wrong type for a known key, is rejected with its index
- imported entries go in front of existing ones, in file order
- non-empty block numbers are merged into the registry ahead of existing ones

## CSV export

File name granite_slabs_export.csv, content type text/csv.

    id,color,width_in,width_ft,blockNumber,length_in,length_ft,sqft,createdAt

color and blockNumber are wrapped in double quotes and not otherwise escaped.
The _ft columns are inches / 12 with two decimals. Lines are separated by a
newline with none after the last row.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
