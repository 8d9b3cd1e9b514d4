package grid

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultDPI is the working resolution used for both tiles and sheets.
	DefaultDPI = 600

	// ReferenceDPI converts a source image's native pixels to a default tile
	// size when the caller does not give one.
	ReferenceDPI = 600

	// MaxPixelDimension is the largest pixel count allowed on either axis.
	// It matches the limit of the JPEG output format.
	MaxPixelDimension = 65535

	// pixelEpsilon absorbs binary floating-point error so that, e.g.,
	// (1001.0/600)*600 truncates to 1001 rather than 1000.
	pixelEpsilon = 1e-9
)

// PhysicalSize is a width and height in inches.
type PhysicalSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PixelSize is a width and height in pixels, derived from a PhysicalSize.
type PixelSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether either axis is zero.
func (p PixelSize) Empty() bool {
	return p.Width <= 0 || p.Height <= 0
}

// DefaultTileSize returns the physical size of an image printed at
// ReferenceDPI, preserving its native aspect ratio.
func DefaultTileSize(nativeWidth, nativeHeight int) PhysicalSize {
	return PhysicalSize{
		Width:  float64(nativeWidth) / ReferenceDPI,
		Height: float64(nativeHeight) / ReferenceDPI,
	}
}

// ToPixels converts size to pixels at dpi by truncating each axis.
//
// name prefixes the dimension in any error, e.g. "tile" yields "tile width".
// Non-positive inches, non-positive dpi, a result of zero pixels, and a result
// above MaxPixelDimension are all reported as *InvalidDimensionError.
func ToPixels(name string, size PhysicalSize, dpi int) (PixelSize, error) {
	if dpi <= 0 {
		return PixelSize{}, &InvalidDimensionError{Dimension: "dpi", DPI: dpi}
	}
	w, err := axisToPixels(name+" width", size.Width, dpi)
	if err != nil {
		return PixelSize{}, err
	}
	h, err := axisToPixels(name+" height", size.Height, dpi)
	if err != nil {
		return PixelSize{}, err
	}
	return PixelSize{Width: w, Height: h}, nil
}

func axisToPixels(dimension string, inches float64, dpi int) (int, error) {
	// NaN fails this comparison too
	if !(inches > 0) {
		return 0, nonPositive(dimension, inches, dpi)
	}
	px := math.Floor(inches*float64(dpi) + pixelEpsilon)
	if math.IsInf(px, 0) || px > MaxPixelDimension {
		return 0, tooLarge(dimension, inches, dpi)
	}
	if px < 1 {
		return 0, zeroPixels(dimension, inches, dpi)
	}
	return int(px), nil
}

// ParseInches reads a decimal number of inches from text.
//
// Surrounding whitespace is ignored. Text that is not a finite real number
// yields a *ParseError for field; a number that is zero or negative yields an
// *InvalidDimensionError.
func ParseInches(field, text string) (float64, error) {
	s := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Field: field, Value: text}
	}
	if v <= 0 {
		return 0, nonPositive(field, v, 0)
	}
	return v, nil
}

// ParseSize reads a width and height in inches. name prefixes the field names
// reported in errors, e.g. "sheet" gives "sheet width" and "sheet height".
func ParseSize(name, width, height string) (PhysicalSize, error) {
	w, err := ParseInches(name+" width", width)
	if err != nil {
		return PhysicalSize{}, err
	}
	h, err := ParseInches(name+" height", height)
	if err != nil {
		return PhysicalSize{}, err
	}
	return PhysicalSize{Width: w, Height: h}, nil
}

// TileSizeOrDefault parses an explicit tile size, or returns DefaultTileSize
// for the native pixel dimensions when either field is blank. The boolean
// reports whether the default was used.
func TileSizeOrDefault(width, height string, nativeWidth, nativeHeight int) (PhysicalSize, bool, error) {
	if strings.TrimSpace(width) == "" || strings.TrimSpace(height) == "" {
		return DefaultTileSize(nativeWidth, nativeHeight), true, nil
	}
	size, err := ParseSize("tile", width, height)
	return size, false, err
}

// SheetSizeOrDefault parses a sheet size, taking each blank field from def.
func SheetSizeOrDefault(width, height string, def PhysicalSize) (PhysicalSize, error) {
	size := def
	if strings.TrimSpace(width) != "" {
		w, err := ParseInches("sheet width", width)
		if err != nil {
			return PhysicalSize{}, err
		}
		size.Width = w
	}
	if strings.TrimSpace(height) != "" {
		h, err := ParseInches("sheet height", height)
		if err != nil {
			return PhysicalSize{}, err
		}
		size.Height = h
	}
	return size, nil
}
