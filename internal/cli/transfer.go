package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rpggio/slabstock/internal/cli/output"
	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/mcp"
	"github.com/rpggio/slabstock/internal/platform"
	"github.com/spf13/cobra"
)

func newExportCmd(e *env) *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stock as CSV",
		Long: `Export the stock as ` + slab.ExportFileName + `.

The file is written to the configured export directory, or uploaded to the
configured S3 bucket. Use --stdout to print it instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if toStdout {
				e.delivery = platform.WriterDelivery{W: e.out}
			}
			a, err := e.inventory(cmd.Context())
			if err != nil {
				return err
			}

			where, err := a.Controller.Export(cmd.Context())
			if err != nil {
				return err
			}
			if toStdout {
				_, err := fmt.Fprintln(e.out)
				return err
			}

			p := e.printer()
			if p.Format() == output.FormatTable {
				p.Println("Exported to " + where)
				return nil
			}
			return p.Print(mcp.ExportCSVResponse{
				FileName:    slab.ExportFileName,
				ContentType: slab.ExportMIMEType,
				Location:    where,
			}, nil)
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the CSV to stdout")
	return cmd
}

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Import slabs from a JSON file",
		Long: `Import a JSON array of slabs, as written by "slabstock list -o json" or
an earlier export of the stock. Entries are added in file order ahead of
the current stock. Use - to read from stdin.

Run "slabstock schema" for the expected shape.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = e.in
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open import file: %w", err)
				}
				defer f.Close()
				r = f
			}

			a, err := e.inventory(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.Controller.Import(cmd.Context(), r)
			if err != nil {
				return reported(err)
			}

			p := e.printer()
			if p.Format() == output.FormatTable {
				p.Println(fmt.Sprintf("Imported %d slabs, %d new block numbers.", result.Imported, result.NewBlockNumbers))
				return nil
			}
			return p.Print(result, nil)
		},
	}
}

func newCopyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a slab as JSON to the clipboard",
		Long: `Copy one slab as JSON to the system clipboard. Without a usable clipboard
the JSON is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.inventory(cmd.Context())
			if err != nil {
				return err
			}
			result, err := a.Controller.Copy(args[0])
			if err != nil {
				return reported(err)
			}

			p := e.printer()
			if p.Format() != output.FormatTable {
				return p.Print(result, nil)
			}
			if !result.Clipboard {
				p.Println(result.JSON)
			}
			return nil
		},
	}
}
