package slab

import (
	"strconv"
	"strings"
)

const csvHeader = "id,color,width_in,width_ft,blockNumber,length_in,length_ft,sqft,createdAt"

// ExportCSV renders slabs as CSV, one line per slab after the header.
// String fields are wrapped in double quotes and are not otherwise escaped.
func ExportCSV(slabs []Slab) string {
	lines := make([]string, 0, len(slabs)+1)
	lines = append(lines, csvHeader)
	for _, s := range slabs {
		fields := []string{
			s.ID,
			`"` + s.Color + `"`,
			formatNumber(s.Width),
			toFixed2(s.Width / 12),
			`"` + s.BlockNumber + `"`,
			formatNumber(s.Length),
			toFixed2(s.Length / 12),
			formatNumber(s.SqFt),
			s.CreatedAt,
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
