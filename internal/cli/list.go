package cli

import (
	"fmt"

	"github.com/rpggio/slabstock/internal/cli/output"
	"github.com/rpggio/slabstock/internal/mcp"
	"github.com/spf13/cobra"
)

func newListCmd(e *env) *cobra.Command {
	var params mcp.ListSlabsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List slabs, most recent first",
		Long: `List the current stock, most recent first.

Examples:
  # Show the stock as a table
  slabstock list

  # Slabs cut from one block, as JSON
  slabstock list --block BLK-102 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.inventory(cmd.Context())
			if err != nil {
				return err
			}
			resp := a.Handler.ListSlabs(params)

			p := e.printer()
			if err := p.PrintList(resp.Slabs, len(resp.Slabs) == 0, "No slabs in stock.", slabTable(resp.Slabs)); err != nil {
				return err
			}
			if p.Format() == output.FormatTable && len(resp.Slabs) > 0 {
				p.Println()
				p.Println(fmt.Sprintf("Current Stock (%d)", resp.Total))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&params.BlockNumber, "block", "", "Only show slabs from this block")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Show at most this many slabs")
	return cmd
}

func newBlocksCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "List remembered block numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.inventory(cmd.Context())
			if err != nil {
				return err
			}
			blocks := a.Inventory.BlockNumbers()
			return e.printer().PrintList(blocks, len(blocks) == 0, "No block numbers yet.", blockTable(blocks))
		},
	}
}

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the current stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.inventory(cmd.Context())
			if err != nil {
				return err
			}
			stats := a.Inventory.Stats()

			p := e.printer()
			if p.Format() != output.FormatTable {
				return p.Print(stats, nil)
			}
			return output.PrintKeyValues(p.Writer(), [][2]string{
				{"Slabs", fmt.Sprint(stats.Slabs)},
				{"Total Sq. Ft", fmt.Sprintf("%.2f", stats.TotalSqFt)},
				{"Block numbers", fmt.Sprint(stats.BlockNumbers)},
			})
		},
	}
}
