package sheet

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/print-grid-mcp/internal/config"
	"github.com/ironsheep/print-grid-mcp/internal/grid"
	"github.com/ironsheep/print-grid-mcp/internal/imaging"
)

func solid(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func newTestRenderer(t *testing.T, dpi int, w io.Writer) *Renderer {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DPI = dpi
	require.NoError(t, cfg.Validate())
	return NewRenderer(cfg, zerolog.New(w))
}

func TestPlan_DefaultTileFromNativeSize(t *testing.T) {
	r := newTestRenderer(t, 600, io.Discard)

	res, err := r.Plan(solid(1200, 1800, color.NRGBA{255, 0, 0, 255}), Request{})
	require.NoError(t, err)

	assert.True(t, res.DefaultTile)
	assert.Equal(t, grid.PhysicalSize{Width: 2, Height: 3}, res.TileInches)
	assert.Equal(t, grid.PhysicalSize{Width: 4, Height: 6}, res.SheetInches)
	assert.Equal(t, grid.PixelSize{Width: 1200, Height: 1800}, res.Placement.Tile)
	assert.Equal(t, grid.PixelSize{Width: 2400, Height: 3600}, res.Placement.Sheet)
	assert.Equal(t, 2, res.Placement.TilesX)
	assert.Equal(t, 2, res.Placement.TilesY)
	assert.Nil(t, res.Output)
}

func TestPlan_ExplicitTile(t *testing.T) {
	r := newTestRenderer(t, 600, io.Discard)

	res, err := r.Plan(solid(10, 10, color.NRGBA{A: 255}), Request{
		TileWidth: "1", TileHeight: "1", SheetWidth: "4", SheetHeight: "6",
	})
	require.NoError(t, err)

	assert.False(t, res.DefaultTile)
	assert.Equal(t, 4, res.Placement.TilesX)
	assert.Equal(t, 6, res.Placement.TilesY)
	assert.Equal(t, 0, res.Placement.MarginX)
	assert.Equal(t, 0, res.Placement.MarginY)
}

func TestPlan_Errors(t *testing.T) {
	r := newTestRenderer(t, 600, io.Discard)
	src := solid(10, 10, color.NRGBA{A: 255})

	_, err := r.Plan(src, Request{TileWidth: "one", TileHeight: "1"})
	var parseErr *grid.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "tile width", parseErr.Field)

	_, err = r.Plan(src, Request{TileWidth: "0", TileHeight: "0"})
	var dimErr *grid.InvalidDimensionError
	require.ErrorAs(t, err, &dimErr)

	_, err = r.Plan(src, Request{SheetWidth: "-4"})
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, "sheet width", dimErr.Dimension)
}

func TestRender(t *testing.T) {
	r := newTestRenderer(t, 10, io.Discard)

	res, err := r.Render(solid(10, 10, color.NRGBA{0, 0, 255, 255}), Request{
		TileWidth: "1", TileHeight: "1", SheetWidth: "2.5", SheetHeight: "1.5",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Output)

	assert.Equal(t, imaging.OutputFilename, res.Output.Filename)
	assert.Equal(t, imaging.OutputMimeType, res.Output.MimeType)
	assert.Equal(t, 2, res.Placement.Count())

	img, err := jpeg.Decode(bytes.NewReader(res.Output.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 25, 15), img.Bounds())
}

func TestRender_Deterministic(t *testing.T) {
	r := newTestRenderer(t, 20, io.Discard)
	src := solid(33, 17, color.NRGBA{40, 160, 90, 255})
	req := Request{TileWidth: "0.7", TileHeight: "1.1", SheetWidth: "4", SheetHeight: "6"}

	first, err := r.Render(src, req)
	require.NoError(t, err)
	second, err := r.Render(src, req)
	require.NoError(t, err)

	assert.Equal(t, first.Output.Data, second.Output.Data)
}

func TestRender_ZeroFitLogsWarning(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, 10, &logs)

	res, err := r.Render(solid(10, 10, color.NRGBA{255, 0, 0, 255}), Request{
		TileWidth: "5", TileHeight: "1", SheetWidth: "4", SheetHeight: "6",
	})
	require.NoError(t, err)

	assert.True(t, res.Placement.Empty())
	assert.NotNil(t, res.Output)
	assert.Contains(t, logs.String(), "no tiles placed")
}

func TestRender_IncompleteTileSizeWarns(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRenderer(t, 600, &logs)

	res, err := r.Plan(solid(30, 20, color.NRGBA{A: 255}), Request{TileWidth: "1"})
	require.NoError(t, err)

	assert.True(t, res.DefaultTile)
	assert.True(t, strings.Contains(logs.String(), "using native size"))
}
