package slab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpggio/slabstock/internal/repository"
)

// Service is the inventory store. It owns the slab list and the block number
// registry and rewrites the persisted value of a collection after every
// mutation of it.
type Service struct {
	mu       sync.Mutex
	storage  Storage
	opts     Options
	validate *validator.Validate
	logger   *slog.Logger

	slabs  []Slab
	blocks []string
}

// NewService creates a new inventory store. Call Load to read persisted state.
func NewService(storage Storage, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.RegistryLimit <= 0 {
		opts.RegistryLimit = MaxBlockNumbers
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Service{
		storage:  storage,
		opts:     opts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		slabs:    []Slab{},
		blocks:   []string{},
	}
}

// Load reads both collections from storage. Missing, unreadable or malformed
// values leave the corresponding collection empty; nothing is returned to the
// caller because prior data is optional.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var slabs []Slab
	if s.loadKey(ctx, SlabsKey, &slabs) {
		s.slabs = slabs
	}
	var blocks []string
	if s.loadKey(ctx, BlockNumbersKey, &blocks) {
		s.blocks = blocks
	}
	if s.slabs == nil {
		s.slabs = []Slab{}
	}
	if s.blocks == nil {
		s.blocks = []string{}
	}
	s.recordInventory()
	s.logger.Debug("inventory loaded", "slabs", len(s.slabs), "block_numbers", len(s.blocks))
}

func (s *Service) loadKey(ctx context.Context, key string, dst any) bool {
	raw, err := s.storage.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return false
	}
	if err != nil {
		s.logger.Warn("failed to read persisted state", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("ignoring malformed persisted state", "key", key, "error", err)
		return false
	}
	return true
}

// Add validates the form input, records a new slab at the front of the list
// and remembers its block number.
func (s *Service) Add(ctx context.Context, req AddRequest) (*Slab, error) {
	blockNumber, length, err := ValidateAddInput(req)
	if err != nil {
		s.validationFailed(err)
		return nil, err
	}

	rec := Slab{
		ID:          s.opts.NewID(),
		Color:       req.Color,
		Width:       req.Width,
		BlockNumber: blockNumber,
		Length:      length,
		SqFt:        SquareFeet(length, req.Width),
		CreatedAt:   s.opts.Now().UTC().Format(isoMillis),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.slabs = append([]Slab{rec}, s.slabs...)
	s.blocks = rememberBlockNumber(s.blocks, rec.BlockNumber, s.opts.RegistryLimit)
	s.persistSlabs(ctx)
	s.persistBlocks(ctx)

	if s.opts.Metrics != nil {
		s.opts.Metrics.SlabAdded()
	}
	s.recordInventory()
	s.logger.Info("slab added", "id", rec.ID, "block_number", rec.BlockNumber, "sqft", rec.SqFt)

	out := rec.clone()
	return &out, nil
}

// Remove deletes the slab with the given id. It reports whether a slab was
// removed; an unknown id changes nothing.
func (s *Service) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Slab, 0, len(s.slabs))
	for _, rec := range s.slabs {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	removed := len(s.slabs) - len(kept)
	if removed == 0 {
		return false
	}

	s.slabs = kept
	s.persistSlabs(ctx)

	if s.opts.Metrics != nil {
		s.opts.Metrics.SlabsRemoved(removed)
	}
	s.recordInventory()
	s.logger.Info("slab removed", "id", id)
	return true
}

// ExportCSV renders the current slab list as CSV.
func (s *Service) ExportCSV() string {
	return ExportCSV(s.List())
}

// ImportJSON prepends the entries of a JSON array to the slab list and merges
// their block numbers into the registry.
func (s *Service) ImportJSON(ctx context.Context, payload []byte) (ImportResult, error) {
	imported, err := s.decodeImport(payload)
	if err != nil {
		s.validationFailed(err)
		return ImportResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blockNumbers := make([]string, 0, len(imported))
	for _, rec := range imported {
		blockNumbers = append(blockNumbers, rec.BlockNumber)
	}
	before := len(s.blocks)

	merged := make([]Slab, 0, len(imported)+len(s.slabs))
	merged = append(merged, imported...)
	merged = append(merged, s.slabs...)
	s.slabs = merged
	s.blocks = mergeBlockNumbers(s.blocks, blockNumbers)
	s.persistSlabs(ctx)
	s.persistBlocks(ctx)

	if s.opts.Metrics != nil {
		s.opts.Metrics.SlabsImported(len(imported))
	}
	s.recordInventory()

	result := ImportResult{
		Imported:        len(imported),
		NewBlockNumbers: len(s.blocks) - before,
	}
	s.logger.Info("slabs imported", "count", result.Imported, "new_block_numbers", result.NewBlockNumbers)
	return result, nil
}

func (s *Service) decodeImport(payload []byte) ([]Slab, error) {
	if !json.Valid(payload) {
		return nil, ErrMalformedJSON
	}
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotAnArray
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, &ValidationError{Kind: KindMalformedJSON, Err: err}
	}

	slabs := make([]Slab, 0, len(entries))
	for i, entry := range entries {
		var rec Slab
		if err := json.Unmarshal(entry, &rec); err != nil {
			return nil, &ValidationError{Kind: KindInvalidRecord, Index: i, Err: err}
		}
		slabs = append(slabs, rec)
	}

	if s.opts.StrictImport {
		if err := ValidateImported(s.validate, slabs); err != nil {
			return nil, err
		}
	}
	return slabs, nil
}

// SlabJSON serializes one slab as compact JSON.
func (s *Service) SlabJSON(id string) ([]byte, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding slab: %w", err)
	}
	return data, nil
}

// Get returns a slab by ID.
func (s *Service) Get(id string) (*Slab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.slabs {
		if rec.ID == id {
			out := rec.clone()
			return &out, nil
		}
	}
	return nil, ErrSlabNotFound
}

// List returns the slabs, most recent first.
func (s *Service) List() []Slab {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Slab, 0, len(s.slabs))
	for _, rec := range s.slabs {
		out = append(out, rec.clone())
	}
	return out
}

// BlockNumbers returns the known block numbers, most recent first.
func (s *Service) BlockNumbers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Stats summarizes the current stock.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, rec := range s.slabs {
		total += rec.SqFt
	}
	return Stats{
		Slabs:        len(s.slabs),
		TotalSqFt:    round2(total),
		BlockNumbers: len(s.blocks),
	}
}

func (s *Service) persistSlabs(ctx context.Context) {
	s.persist(ctx, SlabsKey, s.slabs)
}

func (s *Service) persistBlocks(ctx context.Context) {
	s.persist(ctx, BlockNumbersKey, s.blocks)
}

// persist rewrites one key. Failures are logged and counted, not returned.
func (s *Service) persist(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err == nil {
		err = s.storage.Set(ctx, key, string(data))
	}
	if err != nil {
		s.logger.Error("failed to persist state", "key", key, "error", err)
		if s.opts.Metrics != nil {
			s.opts.Metrics.PersistFailed(key)
		}
	}
}

func (s *Service) validationFailed(err error) {
	if s.opts.Metrics == nil {
		return
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		s.opts.Metrics.ValidationFailed(string(verr.Kind))
	}
}

func (s *Service) recordInventory() {
	if s.opts.Metrics != nil {
		s.opts.Metrics.Inventory(len(s.slabs), len(s.blocks))
	}
}
