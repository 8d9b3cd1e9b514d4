package grid

import (
	"fmt"
	"strings"
)

// ParseError is returned when a size field cannot be read as a real number.
type ParseError struct {
	// Field names the input, e.g. "tile width".
	Field string

	// Value is the text that failed to parse.
	Value string

	// Err is the underlying strconv error, if any.
	Err error
}

// Error returns a message carrying the field name as a hint.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid number of inches", e.Field, e.Value)
}

// Unwrap returns the underlying parse error.
func (e *ParseError) Unwrap() error { return e.Err }

// InvalidDimensionError is returned when a size is not positive, or when it
// rounds down to zero pixels at the working resolution.
type InvalidDimensionError struct {
	// Dimension names the failing axis, e.g. "sheet height" or "dpi".
	Dimension string

	// Inches is the physical value supplied. Zero for "dpi".
	Inches float64

	// DPI is the resolution in effect, or the rejected value for "dpi".
	DPI int

	// Pixels is the derived pixel count when the failure was rounding to zero.
	Pixels int

	reason string
}

// Error describes which dimension failed and why.
func (e *InvalidDimensionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s", e.Dimension)
	switch {
	case e.Dimension == "dpi":
		fmt.Fprintf(&b, ": %d must be positive", e.DPI)
	case e.reason != "":
		fmt.Fprintf(&b, ": %g in %s", e.Inches, e.reason)
	default:
		fmt.Fprintf(&b, ": %g in must be positive", e.Inches)
	}
	return b.String()
}

func nonPositive(dimension string, inches float64, dpi int) *InvalidDimensionError {
	return &InvalidDimensionError{Dimension: dimension, Inches: inches, DPI: dpi}
}

func zeroPixels(dimension string, inches float64, dpi int) *InvalidDimensionError {
	return &InvalidDimensionError{
		Dimension: dimension,
		Inches:    inches,
		DPI:       dpi,
		reason:    fmt.Sprintf("is 0 px at %d dpi", dpi),
	}
}

func tooLarge(dimension string, inches float64, dpi int) *InvalidDimensionError {
	return &InvalidDimensionError{
		Dimension: dimension,
		Inches:    inches,
		DPI:       dpi,
		reason:    fmt.Sprintf("exceeds %d px at %d dpi", MaxPixelDimension, dpi),
	}
}
