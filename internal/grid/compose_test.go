package grid

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	white = color.NRGBA{255, 255, 255, 255}
)

// solidImage creates an in-memory image filled with one color.
func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// quadrantImage creates an image with red, green, blue and white quadrants
// (top-left, top-right, bottom-left, bottom-right).
func quadrantImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch {
			case x < width/2 && y < height/2:
				img.SetNRGBA(x, y, red)
			case y < height/2:
				img.SetNRGBA(x, y, green)
			case x < width/2:
				img.SetNRGBA(x, y, blue)
			default:
				img.SetNRGBA(x, y, white)
			}
		}
	}
	return img
}

// gradientImage creates an image whose every pixel differs from its neighbors.
func gradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 7), uint8(y * 13), uint8(x ^ y), 255})
		}
	}
	return img
}

// countingImage records how many pixels were read from it.
type countingImage struct {
	image.Image
	reads int
}

func (c *countingImage) At(x, y int) color.Color {
	c.reads++
	return c.Image.At(x, y)
}

func TestCompose_PlacesTilesAtOrigins(t *testing.T) {
	src := solidImage(10, 10, red)

	canvas, p, err := Compose(src, PhysicalSize{1, 1}, PhysicalSize{2.5, 1.5}, 10)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 25, 15), canvas.Bounds())
	assert.Equal(t, 2, p.TilesX)
	assert.Equal(t, 1, p.TilesY)
	assert.Equal(t, 2, p.MarginX)
	assert.Equal(t, 2, p.MarginY)
	assert.Equal(t, 3, p.MarginRight())
	assert.Equal(t, 3, p.MarginBottom())

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{1, 1, white},   // top-left margin
		{2, 2, red},     // first tile origin
		{11, 11, red},   // first tile bottom-right
		{12, 2, red},    // second tile origin
		{21, 11, red},   // second tile bottom-right
		{22, 2, white},  // right margin
		{2, 12, white},  // bottom margin
		{24, 14, white}, // last pixel
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canvas.NRGBAAt(tt.x, tt.y), "pixel (%d,%d)", tt.x, tt.y)
	}
}

func TestCompose_UnresizedGrid(t *testing.T) {
	src := quadrantImage(1200, 1800)
	tile := DefaultTileSize(1200, 1800)

	canvas, p, err := Compose(src, tile, PhysicalSize{4, 6}, 600)
	require.NoError(t, err)

	assert.Equal(t, PixelSize{1200, 1800}, p.Tile)
	assert.Equal(t, PixelSize{2400, 3600}, p.Sheet)
	assert.Equal(t, 2, p.TilesX)
	assert.Equal(t, 2, p.TilesY)
	assert.Equal(t, 0, p.MarginX)
	assert.Equal(t, 0, p.MarginY)

	// Every tile is an exact copy of the source.
	samples := []image.Point{{0, 0}, {599, 899}, {600, 0}, {1199, 899}, {0, 900}, {1199, 1799}, {450, 1350}}
	for _, origin := range p.Origins() {
		for _, s := range samples {
			got := canvas.NRGBAAt(origin.X+s.X, origin.Y+s.Y)
			assert.Equal(t, src.NRGBAAt(s.X, s.Y), got, "tile at %v, offset %v", origin, s)
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	src := gradientImage(37, 23)
	tile := PhysicalSize{0.9, 1.3}
	sheet := PhysicalSize{4, 6}

	first, p1, err := Compose(src, tile, sheet, 50)
	require.NoError(t, err)
	second, p2, err := Compose(src, tile, sheet, 50)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, first.Rect, second.Rect)
	assert.True(t, string(first.Pix) == string(second.Pix), "pixel buffers differ")
}

func TestCompose_ZeroFitIsBlank(t *testing.T) {
	src := solidImage(10, 10, red)

	canvas, p, err := Compose(src, PhysicalSize{5, 1}, PhysicalSize{4, 6}, 10)
	require.NoError(t, err)

	assert.True(t, p.Empty())
	assert.Equal(t, 0, p.TilesX)
	assert.Equal(t, image.Rect(0, 0, 40, 60), canvas.Bounds())
	for i, v := range canvas.Pix {
		if v != 0xff {
			t.Fatalf("pixel byte %d = %d, want blank white canvas", i, v)
		}
	}
}

func TestCompose_InvalidTileBeforeResampling(t *testing.T) {
	src := &countingImage{Image: solidImage(50, 50, red)}

	canvas, _, err := Compose(src, PhysicalSize{0, 0}, PhysicalSize{4, 6}, 600)

	var dimErr *InvalidDimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, "tile width", dimErr.Dimension)
	assert.Nil(t, canvas)
	assert.Zero(t, src.reads)
}

func TestCompose_InvalidSheet(t *testing.T) {
	src := &countingImage{Image: solidImage(50, 50, red)}

	canvas, _, err := Compose(src, PhysicalSize{1, 1}, PhysicalSize{4, -1}, 600)

	var dimErr *InvalidDimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, "sheet height", dimErr.Dimension)
	assert.Nil(t, canvas)
	assert.Zero(t, src.reads)
}

func TestCompose_NilSource(t *testing.T) {
	_, _, err := Compose(nil, PhysicalSize{1, 1}, PhysicalSize{4, 6}, 600)
	assert.Error(t, err)
}

func TestCompose_TransparentShowsBackground(t *testing.T) {
	src := solidImage(10, 10, color.NRGBA{255, 0, 0, 0})

	canvas, _, err := Compose(src, PhysicalSize{1, 1}, PhysicalSize{1, 1}, 10)
	require.NoError(t, err)

	assert.Equal(t, white, canvas.NRGBAAt(5, 5))
}

func TestCompose_Background(t *testing.T) {
	src := solidImage(10, 10, red)
	black := color.NRGBA{0, 0, 0, 255}

	canvas, _, err := Compose(src, PhysicalSize{1, 1}, PhysicalSize{1.5, 1.5}, 10, WithBackground(black))
	require.NoError(t, err)

	assert.Equal(t, black, canvas.NRGBAAt(0, 0))
	assert.Equal(t, red, canvas.NRGBAAt(2, 2))
	assert.Equal(t, black, canvas.NRGBAAt(14, 14))
}

func TestCompose_Filters(t *testing.T) {
	src := gradientImage(40, 40)

	for _, name := range Filters() {
		t.Run(name, func(t *testing.T) {
			canvas, p, err := Compose(src, PhysicalSize{1, 1}, PhysicalSize{2, 2}, 15, WithFilter(Filter(name)))
			require.NoError(t, err)
			assert.Equal(t, 4, p.Count())
			assert.Equal(t, image.Rect(0, 0, 30, 30), canvas.Bounds())
		})
	}
}

func TestResample_IgnoresAspectRatio(t *testing.T) {
	src := solidImage(20, 10, blue)

	got := Resample(src, PixelSize{10, 20}, FilterHighQuality)

	assert.Equal(t, image.Rect(0, 0, 10, 20), got.Bounds())
	c := got.NRGBAAt(5, 10)
	assert.InDelta(t, 255, int(c.B), 1)
	assert.InDelta(t, 0, int(c.R), 1)
}

func TestResample_SameSizeCopies(t *testing.T) {
	src := gradientImage(12, 8)

	got := Resample(src, PixelSize{12, 8}, FilterNearest)

	assert.Equal(t, src.Pix, got.Pix)
	got.Pix[0]++
	assert.NotEqual(t, src.Pix[0], got.Pix[0], "resample must not alias the source")
}
