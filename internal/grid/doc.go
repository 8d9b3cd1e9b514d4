// Package grid lays out and rasterizes a sheet of identical tiles.
//
// A sheet is described by two physical sizes in inches (one tile, one sheet)
// and a single resolution in dots per inch. Both sizes are converted to pixels
// by truncation, the source image is resampled to the tile's pixel size, and
// as many whole tiles as fit are pasted onto a background-filled canvas,
// centered on both axes.
//
// # Coordinate System
//
// Pixel coordinates follow the image package: (0,0) is the top-left corner,
// X grows rightward and Y grows downward. Tile origins are the top-left pixel
// of each pasted copy.
//
// # Rounding
//
// Pixel sizes are floor(inches * dpi). Margins are floor(leftover / 2), so when
// the leftover space on an axis is odd the extra pixel ends up on the right or
// bottom edge.
//
// # Errors
//
// Invalid input is reported with typed errors so callers can tell them apart
// with errors.As:
//   - *ParseError: a size field is not a number
//   - *InvalidDimensionError: a size is not positive, or rounds to zero pixels
//
// A tile larger than the sheet is not an error. The result is a blank sheet
// with zero tiles placed; see Placement.Empty.
//
// # Thread Safety
//
// Plan and Compose keep no state between calls and may be called concurrently.
package grid
