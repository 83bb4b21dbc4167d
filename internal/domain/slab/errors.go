package slab

import (
	"errors"
	"fmt"
)

// ValidationKind identifies why an operation rejected its input.
type ValidationKind string

const (
	KindEmptyBlockNumber ValidationKind = "EMPTY_BLOCK_NUMBER"
	KindInvalidLength    ValidationKind = "INVALID_LENGTH"
	KindInvalidWidth     ValidationKind = "INVALID_WIDTH"
	KindMalformedJSON    ValidationKind = "MALFORMED_JSON"
	KindNotAnArray       ValidationKind = "NOT_AN_ARRAY"
	KindInvalidRecord    ValidationKind = "INVALID_RECORD"
)

// ValidationError is returned when input is rejected. No state is changed.
type ValidationError struct {
	Kind ValidationKind
	// Index is the offending array position for KindInvalidRecord.
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindEmptyBlockNumber:
		return "block number required"
	case KindInvalidLength:
		return "length required (numeric, inches)"
	case KindInvalidWidth:
		return "width must be a finite number of inches"
	case KindMalformedJSON:
		return "invalid JSON"
	case KindNotAnArray:
		return "JSON must be array"
	case KindInvalidRecord:
		if e.Err != nil {
			return fmt.Sprintf("invalid record at index %d: %v", e.Index, e.Err)
		}
		return fmt.Sprintf("invalid record at index %d", e.Index)
	default:
		return "invalid input"
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches any ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	// ErrEmptyBlockNumber matches validation errors for a blank block number.
	ErrEmptyBlockNumber = &ValidationError{Kind: KindEmptyBlockNumber}
	// ErrInvalidLength matches validation errors for a missing or non-numeric length.
	ErrInvalidLength = &ValidationError{Kind: KindInvalidLength}
	// ErrInvalidWidth matches validation errors for a NaN or infinite width.
	ErrInvalidWidth = &ValidationError{Kind: KindInvalidWidth}
	// ErrMalformedJSON matches import payloads that are not JSON.
	ErrMalformedJSON = &ValidationError{Kind: KindMalformedJSON}
	// ErrNotAnArray matches import payloads whose top-level value is not an array.
	ErrNotAnArray = &ValidationError{Kind: KindNotAnArray}
	// ErrInvalidRecord matches import entries that do not fit the slab shape.
	ErrInvalidRecord = &ValidationError{Kind: KindInvalidRecord}

	// ErrSlabNotFound indicates the slab doesn't exist.
	ErrSlabNotFound = errors.New("slab not found")
)

// UserMessage returns the notification text shown for err.
func UserMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		switch verr.Kind {
		case KindEmptyBlockNumber:
			return "Block number required"
		case KindInvalidLength:
			return "Length required (numeric, inches)"
		case KindInvalidWidth:
			return "Width must be a number (inches)"
		case KindMalformedJSON:
			return "Invalid JSON"
		case KindNotAnArray:
			return "JSON must be array"
		}
		return verr.Error()
	}
	if errors.Is(err, ErrSlabNotFound) {
		return "Slab not found"
	}
	return err.Error()
}
