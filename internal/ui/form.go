// Package ui holds the entry form state and the user-facing inventory
// actions shared by the CLI and the servers.
package ui

import "github.com/rpggio/slabstock/internal/domain/slab"

// Catalog lists the colors and widths offered by the form.
type Catalog struct {
	Colors []string  `json:"colors" yaml:"colors"`
	Widths []float64 `json:"widths" yaml:"widths"`
}

// DefaultCatalog returns the built-in colors and widths.
func DefaultCatalog() Catalog {
	return Catalog{
		Colors: append([]string(nil), slab.DefaultColors...),
		Widths: append([]float64(nil), slab.DefaultWidths...),
	}
}

// Normalize fills empty lists with the defaults.
func (c Catalog) Normalize() Catalog {
	if len(c.Colors) == 0 {
		c.Colors = append([]string(nil), slab.DefaultColors...)
	}
	if len(c.Widths) == 0 {
		c.Widths = append([]float64(nil), slab.DefaultWidths...)
	}
	return c
}

// HasColor reports whether color is in the catalog.
func (c Catalog) HasColor(color string) bool {
	for _, v := range c.Colors {
		if v == color {
			return true
		}
	}
	return false
}

// HasWidth reports whether width is in the catalog.
func (c Catalog) HasWidth(width float64) bool {
	for _, v := range c.Widths {
		if v == width {
			return true
		}
	}
	return false
}

// Form is the entry form for a new slab.
type Form struct {
	Color       string
	Width       float64
	BlockNumber string
	Length      string

	catalog Catalog
}

// NewForm returns a form preset to the first catalog entries.
func NewForm(catalog Catalog) *Form {
	f := &Form{catalog: catalog.Normalize()}
	f.Clear()
	return f
}

// Catalog returns the options the form offers.
func (f *Form) Catalog() Catalog {
	return f.catalog
}

// Clear empties the text fields and resets color and width to the first options.
func (f *Form) Clear() {
	f.BlockNumber = ""
	f.Length = ""
	f.Color = f.catalog.Colors[0]
	f.Width = f.catalog.Widths[0]
}

// Request converts the form fields into an add request.
func (f *Form) Request() slab.AddRequest {
	return slab.AddRequest{
		Color:       f.Color,
		Width:       f.Width,
		BlockNumber: f.BlockNumber,
		Length:      f.Length,
	}
}
