package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/spf13/cobra"
)

var slabFieldDocs = map[string]string{
	"id":          "Opaque slab identifier",
	"color":       "Slab color",
	"width":       "Width in inches",
	"blockNumber": "Quarry block number",
	"length":      "Length in inches",
	"sqft":        "Area in square feet, rounded to 2 decimals",
	"createdAt":   "Creation time, ISO-8601 UTC with milliseconds",
}

// importSchema describes the file accepted by "slabstock import". Unknown
// keys are allowed because they are kept on import.
func importSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}

	item := reflector.Reflect(&slab.Slab{})
	item.Version = ""
	item.ID = ""
	if item.Properties != nil {
		for name, doc := range slabFieldDocs {
			if prop, ok := item.Properties.Get(name); ok {
				prop.Description = doc
			}
		}
	}

	return &jsonschema.Schema{
		Version:     "https://json-schema.org/draft/2020-12/schema",
		Title:       "slabstock import",
		Description: "A JSON array of granite slabs",
		Type:        "array",
		Items:       item,
	}
}

func newSchemaCmd(e *env) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of import files",
		Long: `Print the JSON schema of the files accepted by "slabstock import".

Examples:
  slabstock schema
  slabstock schema --file slabs.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(importSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("generate schema: %w", err)
			}

			if file != "" {
				if err := os.WriteFile(file, data, 0o644); err != nil {
					return fmt.Errorf("write schema file: %w", err)
				}
				e.printer().Println("JSON schema written to " + file)
				return nil
			}
			_, err = fmt.Fprintln(e.out, string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Write the schema to a file instead of stdout")
	return cmd
}
