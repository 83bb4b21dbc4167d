package cli

import (
	"fmt"

	"github.com/rpggio/slabstock/internal/cli/output"
	"github.com/rpggio/slabstock/internal/cli/prompt"
	"github.com/rpggio/slabstock/internal/mcp"
	"github.com/rpggio/slabstock/internal/ui"
	"github.com/spf13/cobra"
)

func newDeleteCmd(e *env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a slab",
		Long: `Delete a slab from the stock.

You will be asked for confirmation unless --force is specified. Without a
terminal to ask on, the slab is deleted and a warning is logged. Deleting an
ID that is not in stock changes nothing and still exits 0.

Examples:
  slabstock delete 3f2c9a7e-...
  slabstock delete 3f2c9a7e-... --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			a, err := e.inventory(cmd.Context())
			if err != nil {
				return err
			}

			var confirm ui.Confirmer
			declined := false
			switch {
			case force:
				confirm = func(string) (bool, error) { return true, nil }
			case e.interactive():
				confirm = func(question string) (bool, error) {
					ok, err := e.confirm(question, false)
					declined = err == nil && !ok
					return ok, err
				}
			}

			p := e.printer()
			deleted, err := a.Controller.Delete(cmd.Context(), id, confirm)
			if err != nil {
				if prompt.IsAborted(err) {
					p.Println("Aborted.")
					return nil
				}
				return err
			}
			if declined {
				p.Println("Aborted.")
				return nil
			}
			if p.Format() == output.FormatTable {
				if deleted {
					p.Println(fmt.Sprintf("Slab %s deleted.", id))
				} else {
					p.Println(fmt.Sprintf("No slab %s; nothing deleted.", id))
				}
				return nil
			}
			return p.Print(mcp.DeleteSlabResponse{ID: id, Deleted: deleted}, nil)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
