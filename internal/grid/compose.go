package grid

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Option configures a call to Compose.
type Option func(*options)

type options struct {
	filter     Filter
	background color.Color
}

func defaultOptions() options {
	return options{
		filter:     FilterHighQuality,
		background: color.White,
	}
}

// WithFilter selects the resampling filter. Unknown names fall back to
// FilterHighQuality; use ParseFilter to validate user input first.
func WithFilter(f Filter) Option {
	return func(o *options) { o.filter = f }
}

// WithBackground sets the color of the canvas behind and between tiles.
// A nil color keeps the default of white.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.background = c
		}
	}
}

// Compose resamples src to the tile size and pastes as many copies as fit
// onto a sheet-sized canvas, centered on both axes.
//
// Both sizes are validated before any pixel work is done. The source aspect
// ratio is not preserved: the tile's two physical dimensions fully determine
// the resampled shape. When no tile fits along an axis the returned canvas is
// blank and the Placement reports zero tiles.
//
// Transparent areas of the tile show the background color.
func Compose(src image.Image, tile, sheet PhysicalSize, dpi int, opts ...Option) (*image.NRGBA, Placement, error) {
	if src == nil {
		return nil, Placement{}, errors.New("grid: nil source image")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p, err := Plan(tile, sheet, dpi)
	if err != nil {
		return nil, Placement{}, err
	}

	canvas := imaging.New(p.Sheet.Width, p.Sheet.Height, o.background)
	if p.Empty() {
		return canvas, p, nil
	}

	t := Resample(src, p.Tile, o.filter)
	for _, r := range p.Rects() {
		draw.Draw(canvas, r, t, t.Bounds().Min, draw.Over)
	}

	return canvas, p, nil
}

// Resample scales src to exactly size using filter. A source that is already
// the requested size is copied unchanged.
func Resample(src image.Image, size PixelSize, filter Filter) *image.NRGBA {
	b := src.Bounds()
	if b.Dx() == size.Width && b.Dy() == size.Height {
		return imaging.Clone(src)
	}
	return imaging.Resize(src, size.Width, size.Height, filter.resampler())
}
