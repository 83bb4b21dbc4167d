package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/ui"
	"github.com/spf13/cobra"
)

func newAddCmd(e *env) *cobra.Command {
	var (
		color       string
		width       float64
		blockNumber string
		length      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a slab",
		Long: `Record a slab and remember its block number.

Color and width default to the first catalog entries. On a terminal,
missing values are asked for interactively.

Examples:
  # Add a slab
  slabstock add --color "Black Granite" --width 18 --block BLK-102 --length 96

  # Pick values interactively
  slabstock add`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.inventory(cmd.Context())
			if err != nil {
				return err
			}

			form := ui.NewForm(a.Catalog)
			flags := cmd.Flags()
			if flags.Changed("color") {
				form.Color = color
			}
			if flags.Changed("width") {
				form.Width = width
			}
			form.BlockNumber = blockNumber
			form.Length = length

			if e.interactive() {
				if err := e.fillForm(form, flags.Changed("color"), flags.Changed("width")); err != nil {
					return err
				}
			}

			rec, err := a.Controller.Submit(cmd.Context(), form)
			if err != nil {
				return reported(err)
			}
			return e.printer().Print(rec, slabTable{*rec})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Slab color")
	cmd.Flags().Float64Var(&width, "width", 0, "Slab width in inches")
	cmd.Flags().StringVar(&blockNumber, "block", "", "Block number")
	cmd.Flags().StringVar(&length, "length", "", "Slab length in inches")
	return cmd
}

// fillForm asks for every field not given on the command line.
func (e *env) fillForm(form *ui.Form, haveColor, haveWidth bool) error {
	catalog := form.Catalog()

	if !haveColor {
		color, err := e.choose("Color", catalog.Colors)
		if err != nil {
			return err
		}
		form.Color = color
	}

	if !haveWidth {
		items := make([]string, len(catalog.Widths))
		for i, w := range catalog.Widths {
			items[i] = formatInches(w)
		}
		choice, err := e.choose("Width (in)", items)
		if err != nil {
			return err
		}
		w, err := strconv.ParseFloat(choice, 64)
		if err != nil {
			return fmt.Errorf("width %q: %w", choice, err)
		}
		form.Width = w
	}

	if strings.TrimSpace(form.BlockNumber) == "" {
		block, err := e.ask("Block number", "", func(s string) error {
			if strings.TrimSpace(s) == "" {
				return slab.ErrEmptyBlockNumber
			}
			return nil
		})
		if err != nil {
			return err
		}
		form.BlockNumber = block
	}

	if strings.TrimSpace(form.Length) == "" {
		length, err := e.ask("Length (in)", "", func(s string) error {
			_, err := slab.ParseLength(s)
			return err
		})
		if err != nil {
			return err
		}
		form.Length = length
	}
	return nil
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
