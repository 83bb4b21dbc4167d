package slab

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ParseLength parses a user-supplied length in inches.
func ParseLength(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrInvalidLength
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Kind: KindInvalidLength, Err: err}
	}
	return v, nil
}

// ValidateAddInput checks the form fields and returns the parsed length.
// Both the width and the square feet derived from it must be finite, since
// the slab list could not be persisted otherwise.
func ValidateAddInput(req AddRequest) (string, float64, error) {
	blockNumber := strings.TrimSpace(req.BlockNumber)
	if blockNumber == "" {
		return "", 0, ErrEmptyBlockNumber
	}
	if !finite(req.Width) {
		return "", 0, ErrInvalidWidth
	}
	length, err := ParseLength(req.Length)
	if err != nil {
		return "", 0, err
	}
	if !finite(SquareFeet(length, req.Width)) {
		return "", 0, ErrInvalidLength
	}
	return blockNumber, length, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateImported runs struct validation over imported entries.
func ValidateImported(v *validator.Validate, slabs []Slab) error {
	for i := range slabs {
		if err := v.Struct(slabs[i]); err != nil {
			return &ValidationError{Kind: KindInvalidRecord, Index: i, Err: err}
		}
	}
	return nil
}

// SquareFeet converts inches to square feet rounded to two decimals.
func SquareFeet(length, width float64) float64 {
	return round2(length * width / 144)
}

func round2(v float64) float64 {
	if !finite(v) {
		return v
	}
	out, err := strconv.ParseFloat(toFixed2(v), 64)
	if err != nil {
		return v
	}
	return out
}

// toFixed2 formats v with two decimals, rounding the exact binary value of
// |v| half up, the way ECMAScript Number.prototype.toFixed does.
func toFixed2(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	r := new(big.Rat).SetFloat64(math.Abs(v))
	r.Mul(r, big.NewRat(100, 1))
	r.Add(r, big.NewRat(1, 2))
	cents := new(big.Int).Quo(r.Num(), r.Denom())

	digits := cents.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if v < 0 && cents.Sign() != 0 {
		out = "-" + out
	}
	return out
}
