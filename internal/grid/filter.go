package grid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// Filter names the resampling filter used to scale the source to tile size.
type Filter string

const (
	// FilterHighQuality is an anti-aliased Lanczos filter. It is the default.
	FilterHighQuality Filter = "high-quality"

	// FilterBox averages the source pixels covered by each output pixel.
	FilterBox Filter = "box"

	// FilterLinear is bilinear interpolation.
	FilterLinear Filter = "linear"

	// FilterNearest picks the nearest source pixel with no smoothing.
	FilterNearest Filter = "nearest"
)

var resampleFilters = map[Filter]imaging.ResampleFilter{
	FilterHighQuality: imaging.Lanczos,
	FilterBox:         imaging.Box,
	FilterLinear:      imaging.Linear,
	FilterNearest:     imaging.NearestNeighbor,
}

// Filters returns the recognized filter names in sorted order.
func Filters() []string {
	names := make([]string, 0, len(resampleFilters))
	for f := range resampleFilters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// ParseFilter maps a filter name to a Filter. The empty string selects
// FilterHighQuality; matching is case-insensitive.
func ParseFilter(name string) (Filter, error) {
	if name == "" {
		return FilterHighQuality, nil
	}
	f := Filter(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := resampleFilters[f]; !ok {
		return "", fmt.Errorf("unknown resample filter %q (want one of %s)", name, strings.Join(Filters(), ", "))
	}
	return f, nil
}

func (f Filter) resampler() imaging.ResampleFilter {
	if r, ok := resampleFilters[f]; ok {
		return r
	}
	return imaging.Lanczos
}
