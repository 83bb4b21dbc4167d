package slab

import "time"

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	// StrictImport validates every imported entry field by field.
	StrictImport bool
	// RegistryLimit caps the block number registry on add. Defaults to MaxBlockNumbers.
	RegistryLimit int
	Metrics       Metrics
	Now           func() time.Time
	NewID         func() string
}
