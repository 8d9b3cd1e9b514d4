package grid

import "image"

// Placement is the grid computed for one sheet: how many tiles fit along each
// axis and where the first one starts.
type Placement struct {
	// Tile is the pixel size of one tile.
	Tile PixelSize `json:"tile"`

	// Sheet is the pixel size of the whole canvas.
	Sheet PixelSize `json:"sheet"`

	// TilesX and TilesY are the number of whole tiles along each axis.
	TilesX int `json:"tiles_x"`
	TilesY int `json:"tiles_y"`

	// MarginX and MarginY are the left and top margins in pixels.
	MarginX int `json:"margin_x"`
	MarginY int `json:"margin_y"`
}

// Plan converts both sizes to pixels at dpi and computes the centered grid.
// No image data is touched.
func Plan(tile, sheet PhysicalSize, dpi int) (Placement, error) {
	tilePx, err := ToPixels("tile", tile, dpi)
	if err != nil {
		return Placement{}, err
	}
	sheetPx, err := ToPixels("sheet", sheet, dpi)
	if err != nil {
		return Placement{}, err
	}
	return place(tilePx, sheetPx), nil
}

// place computes the grid for pixel sizes that are already known to be
// non-empty.
func place(tile, sheet PixelSize) Placement {
	p := Placement{
		Tile:   tile,
		Sheet:  sheet,
		TilesX: sheet.Width / tile.Width,
		TilesY: sheet.Height / tile.Height,
	}
	p.MarginX = (sheet.Width - p.TilesX*tile.Width) / 2
	p.MarginY = (sheet.Height - p.TilesY*tile.Height) / 2
	return p
}

// Count returns the number of tiles placed.
func (p Placement) Count() int {
	return p.TilesX * p.TilesY
}

// Empty reports whether no tile fits on the sheet.
func (p Placement) Empty() bool {
	return p.Count() == 0
}

// MarginRight returns the right margin in pixels. It is MarginX or MarginX+1.
func (p Placement) MarginRight() int {
	return p.Sheet.Width - p.TilesX*p.Tile.Width - p.MarginX
}

// MarginBottom returns the bottom margin in pixels. It is MarginY or MarginY+1.
func (p Placement) MarginBottom() int {
	return p.Sheet.Height - p.TilesY*p.Tile.Height - p.MarginY
}

// Origins returns the top-left pixel of every tile in row-major order.
func (p Placement) Origins() []image.Point {
	pts := make([]image.Point, 0, p.Count())
	for row := 0; row < p.TilesY; row++ {
		for col := 0; col < p.TilesX; col++ {
			pts = append(pts, image.Pt(
				p.MarginX+col*p.Tile.Width,
				p.MarginY+row*p.Tile.Height,
			))
		}
	}
	return pts
}

// Rects returns the pixel bounds of every tile in row-major order.
func (p Placement) Rects() []image.Rectangle {
	size := image.Pt(p.Tile.Width, p.Tile.Height)
	origins := p.Origins()
	rects := make([]image.Rectangle, len(origins))
	for i, pt := range origins {
		rects[i] = image.Rectangle{Min: pt, Max: pt.Add(size)}
	}
	return rects
}
