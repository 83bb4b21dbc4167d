package cli

import (
	"fmt"
	"strconv"

	"github.com/rpggio/slabstock/internal/domain/slab"
)

// slabTable renders slabs the way the stock list shows them.
type slabTable []slab.Slab

func (t slabTable) Headers() []string {
	return []string{"ID", "Color", "Width", "Length", "Sq. Ft", "Block #", "Added"}
}

func (t slabTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, rec := range t {
		added := "-"
		if created, ok := rec.Created(); ok {
			added = created.Local().Format("2006-01-02 15:04")
		} else if rec.CreatedAt != "" {
			added = rec.CreatedAt
		}
		rows = append(rows, []string{
			rec.ID,
			rec.Color,
			formatInches(rec.Width) + `"`,
			formatInches(rec.Length) + `"`,
			fmt.Sprintf("%.2f", rec.SqFt),
			rec.BlockNumber,
			added,
		})
	}
	return rows
}

type blockTable []string

func (t blockTable) Headers() []string {
	return []string{"#", "Block #"}
}

func (t blockTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for i, b := range t {
		rows = append(rows, []string{strconv.Itoa(i + 1), b})
	}
	return rows
}
