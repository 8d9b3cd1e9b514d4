// Package sheet turns a source image and the size fields a user typed into a
// finished, encoded print sheet. It is the glue between the text inputs of the
// MCP tools and CLI on one side and the pure grid compositor on the other.
package sheet

import (
	"image"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/print-grid-mcp/internal/config"
	"github.com/ironsheep/print-grid-mcp/internal/grid"
	"github.com/ironsheep/print-grid-mcp/internal/imaging"
)

// Request holds the four size fields as decimal text in inches. Blank tile
// fields select the source's native size at grid.ReferenceDPI; blank sheet
// fields select the configured default sheet.
type Request struct {
	TileWidth   string
	TileHeight  string
	SheetWidth  string
	SheetHeight string
}

// Result describes a planned or rendered sheet.
type Result struct {
	Placement   grid.Placement    `json:"placement"`
	TileInches  grid.PhysicalSize `json:"tile_inches"`
	SheetInches grid.PhysicalSize `json:"sheet_inches"`
	DPI         int               `json:"dpi"`
	DefaultTile bool              `json:"default_tile"`

	// Output is the encoded sheet. Nil for plans.
	Output *imaging.Output `json:"-"`
}

// Renderer plans and renders sheets with one configuration.
// It holds no per-sheet state and is safe for concurrent use.
type Renderer struct {
	cfg  config.Config
	opts []grid.Option
	log  zerolog.Logger
}

// NewRenderer returns a Renderer for cfg, which must already be validated.
func NewRenderer(cfg config.Config, log zerolog.Logger) *Renderer {
	return &Renderer{
		cfg:  cfg,
		opts: cfg.ComposeOptions(),
		log:  log,
	}
}

// Plan resolves the request against src and computes the grid without
// rasterizing anything. Only the bounds of src are read.
func (r *Renderer) Plan(src image.Image, req Request) (*Result, error) {
	res, err := r.resolve(src, req)
	if err != nil {
		return nil, err
	}
	p, err := grid.Plan(res.TileInches, res.SheetInches, res.DPI)
	if err != nil {
		return nil, err
	}
	res.Placement = p
	r.logPlacement("planned sheet", res)
	return res, nil
}

// Render resolves the request, composes the sheet and encodes it as JPEG.
func (r *Renderer) Render(src image.Image, req Request) (*Result, error) {
	res, err := r.resolve(src, req)
	if err != nil {
		return nil, err
	}

	canvas, p, err := grid.Compose(src, res.TileInches, res.SheetInches, res.DPI, r.opts...)
	if err != nil {
		return nil, err
	}
	res.Placement = p

	out, err := imaging.EncodeJPEG(canvas, r.cfg.JPEGQuality)
	if err != nil {
		return nil, err
	}
	res.Output = out

	r.logPlacement("composed sheet", res)
	return res, nil
}

func (r *Renderer) resolve(src image.Image, req Request) (*Result, error) {
	b := src.Bounds()
	tile, defaulted, err := grid.TileSizeOrDefault(req.TileWidth, req.TileHeight, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	if defaulted && (strings.TrimSpace(req.TileWidth) != "" || strings.TrimSpace(req.TileHeight) != "") {
		r.log.Warn().
			Str("tile_width", req.TileWidth).
			Str("tile_height", req.TileHeight).
			Msg("tile size needs both width and height; using native size")
	}

	sheet, err := grid.SheetSizeOrDefault(req.SheetWidth, req.SheetHeight, r.cfg.Sheet())
	if err != nil {
		return nil, err
	}

	return &Result{
		TileInches:  tile,
		SheetInches: sheet,
		DPI:         r.cfg.DPI,
		DefaultTile: defaulted,
	}, nil
}

func (r *Renderer) logPlacement(msg string, res *Result) {
	p := res.Placement
	if p.Empty() {
		r.log.Warn().
			Interface("tile_px", p.Tile).
			Interface("sheet_px", p.Sheet).
			Msg("tile is larger than the sheet; no tiles placed")
	}
	ev := r.log.Info().
		Int("tiles_x", p.TilesX).
		Int("tiles_y", p.TilesY).
		Int("margin_x", p.MarginX).
		Int("margin_y", p.MarginY).
		Int("dpi", res.DPI)
	if res.Output != nil {
		ev = ev.Int("bytes", len(res.Output.Data))
	}
	ev.Msg(msg)
}
