package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/slabstock/internal/domain/slab"
)

var (
	// ErrConfirmationRequired is returned by delete_slab without confirm=true.
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrUnknownMethod is returned by Handle for names not in Methods.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrInvalidParams is returned when params do not decode into the method's arguments.
	ErrInvalidParams = errors.New("invalid params")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// ValidationDetails describes a rejected input.
type ValidationDetails struct {
	Kind  slab.ValidationKind `json:"kind"`
	Index *int                `json:"index,omitempty"`
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var verr *slab.ValidationError
	switch {
	case errors.As(err, &verr):
		details := ValidationDetails{Kind: verr.Kind}
		hint := "Fix the input and retry"
		if verr.Kind == slab.KindInvalidRecord {
			idx := verr.Index
			details.Index = &idx
			hint = "Check the entry at the reported index"
		}
		return &APIError{Code: "VALIDATION_ERROR", Message: slab.UserMessage(err), Details: details, RecoveryHint: hint}
	case errors.Is(err, slab.ErrSlabNotFound):
		return &APIError{Code: "SLAB_NOT_FOUND", Message: "slab not found", RecoveryHint: "Call list_slabs to find the ID"}
	case errors.Is(err, ErrConfirmationRequired):
		return &APIError{Code: "CONFIRMATION_REQUIRED", Message: "delete requires confirmation", RecoveryHint: "Retry with confirm=true"}
	default:
		return nil
	}
}
