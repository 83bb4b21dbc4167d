package slab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Storage keys for the two persisted collections.
const (
	SlabsKey        = "granite_slabs_v2"
	BlockNumbersKey = "granite_block_numbers_v2"
)

// MaxBlockNumbers caps the block number registry on add.
const MaxBlockNumbers = 500

// Export file metadata offered to the user.
const (
	ExportFileName = "granite_slabs_export.csv"
	ExportMIMEType = "text/csv"
)

// DefaultColors are the slab colors offered when none are configured.
var DefaultColors = []string{"Black Granite", "Red Galaxy", "Fantasy", "Sadu Pink"}

// DefaultWidths are the slab widths (inches) offered when none are configured.
var DefaultWidths = []float64{12, 18, 24, 30, 36}

// isoMillis is the millisecond ISO-8601 form written for createdAt.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Slab is a single granite inventory unit.
//
// The JSON form is both the persisted shape and the import/export shape.
// Keys that are not part of the model are kept in Extra and written back
// unchanged, so imported entries survive a round trip without loss.
// CreatedAt holds the timestamp text as received; a createdAt value that is
// not a non-empty string stays in Extra instead.
type Slab struct {
	ID          string  `json:"id" validate:"required"`
	Color       string  `json:"color"`
	Width       float64 `json:"width" validate:"gt=0"`
	BlockNumber string  `json:"blockNumber" validate:"required"`
	Length      float64 `json:"length" validate:"gt=0"`
	SqFt        float64 `json:"sqft" validate:"gte=0"`
	CreatedAt   string  `json:"createdAt"`

	Extra map[string]json.RawMessage `json:"-" validate:"-"`
}

// slabFields mirrors the known fields of Slab without its JSON methods.
type slabFields struct {
	ID          string  `json:"id"`
	Color       string  `json:"color"`
	Width       float64 `json:"width"`
	BlockNumber string  `json:"blockNumber"`
	Length      float64 `json:"length"`
	SqFt        float64 `json:"sqft"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

var knownFields = map[string]struct{}{
	"id": {}, "color": {}, "width": {}, "blockNumber": {},
	"length": {}, "sqft": {}, "createdAt": {},
}

// Created parses CreatedAt. It reports false when the text is not RFC 3339.
func (s Slab) Created() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MarshalJSON writes the known fields followed by any extra fields in key order.
func (s Slab) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(slabFields{
		ID:          s.ID,
		Color:       s.Color,
		Width:       s.Width,
		BlockNumber: s.BlockNumber,
		Length:      s.Length,
		SqFt:        s.SqFt,
		CreatedAt:   s.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		if _, known := knownFields[k]; known && !(k == "createdAt" && s.CreatedAt == "") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(s.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the slab shape, keeping unknown keys.
// Known keys match exactly; "ID" or "BlockNumber" are extra keys like any other.
func (s *Slab) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("slab must be a JSON object")
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &all); err != nil {
		return err
	}

	var out Slab
	fields := []struct {
		key string
		dst any
	}{
		{"id", &out.ID},
		{"color", &out.Color},
		{"width", &out.Width},
		{"blockNumber", &out.BlockNumber},
		{"length", &out.Length},
		{"sqft", &out.SqFt},
	}
	for _, f := range fields {
		raw, ok := all[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
		delete(all, f.key)
	}
	if raw, ok := all["createdAt"]; ok {
		var created string
		if err := json.Unmarshal(raw, &created); err == nil && created != "" {
			out.CreatedAt = created
			delete(all, "createdAt")
		}
	}

	if len(all) > 0 {
		out.Extra = all
	}
	*s = out
	return nil
}

func (s Slab) clone() Slab {
	out := s
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// AddRequest carries the raw form input for a new slab.
type AddRequest struct {
	Color       string
	Width       float64
	BlockNumber string
	Length      string
}

// ImportResult summarizes a successful JSON import.
type ImportResult struct {
	Imported        int `json:"imported"`
	NewBlockNumbers int `json:"new_block_numbers"`
}

// Stats summarizes the current stock.
type Stats struct {
	Slabs        int     `json:"slabs"`
	TotalSqFt    float64 `json:"total_sqft"`
	BlockNumbers int     `json:"block_numbers"`
}
