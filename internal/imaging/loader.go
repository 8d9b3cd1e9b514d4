package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/print-grid-mcp/internal/grid"
)

// UnsupportedFormatError is returned when input bytes do not decode as a
// recognized raster image.
type UnsupportedFormatError struct {
	// Source names where the bytes came from, e.g. a file path. May be empty.
	Source string

	// Err is the decoder error.
	Err error
}

// Error returns the message shown to callers.
func (e *UnsupportedFormatError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s is not a valid image: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("not a valid image: %v", e.Err)
}

// Unwrap returns the decoder error.
func (e *UnsupportedFormatError) Unwrap() error { return e.Err }

// IsUnsupportedFormat reports whether err is, or wraps, an
// *UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var ufe *UnsupportedFormatError
	return errors.As(err, &ufe)
}

// Decode reads one raster image from r.
//
// Returns the image and the registered format name ("png", "jpeg", "gif",
// "webp", "bmp" or "tiff"). Any decode failure, including unrecognized or
// truncated data, is returned as *UnsupportedFormatError.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", &UnsupportedFormatError{Err: err}
	}
	return img, format, nil
}

// DecodeBytes decodes an in-memory image, e.g. an uploaded file.
func DecodeBytes(b []byte) (image.Image, string, error) {
	return Decode(bytes.NewReader(b))
}

// ImageCache provides thread-safe caching of decoded source images to avoid
// redundant disk reads.
//
// The cache stores decoded images keyed by their file path. Once an image is
// loaded, subsequent Load() calls for the same path return the cached copy
// without disk I/O. Cached images are treated as read-only; composition never
// mutates its source.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img    image.Image
	format string
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load retrieves an image from the cache or reads and decodes it from disk.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) will result in separate cache
// entries.
//
// # Errors
//
//   - Returns a wrapped os error if the file does not exist or cannot be read
//   - Returns *UnsupportedFormatError if the file is not a recognized image
func (c *ImageCache) Load(path string) (image.Image, error) {
	img, _, err := c.load(path)
	return img, err
}

func (c *ImageCache) load(path string) (image.Image, string, error) {
	c.mu.RLock()
	if ci, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return ci.img, ci.format, nil
	}
	c.mu.RUnlock()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}

	img, format, err := DecodeBytes(b)
	if err != nil {
		var ufe *UnsupportedFormatError
		if errors.As(err, &ufe) {
			ufe.Source = path
		}
		return nil, "", err
	}

	c.mu.Lock()
	c.images[path] = cachedImage{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a source image file.
type ImageInfo struct {
	// Width is the native image width in pixels.
	Width int `json:"width"`

	// Height is the native image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognized the file, e.g. "png" or "jpeg".
	Format string `json:"format"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	// Transparent areas print as the sheet background.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// DefaultTileInches is the tile size used when none is given: the native
	// pixel size at the reference resolution.
	DefaultTileInches grid.PhysicalSize `json:"default_tile_inches"`
}

// LoadImageInfo loads an image and returns its metadata.
//
// The format is taken from the decoder that accepted the file, not from the
// file extension.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, format, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	case *image.Paletted:
		hasAlpha = !m.Opaque()
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:             bounds.Dx(),
		Height:            bounds.Dy(),
		Format:            format,
		HasAlpha:          hasAlpha,
		FileSizeBytes:     stat.Size(),
		DefaultTileInches: grid.DefaultTileSize(bounds.Dx(), bounds.Dy()),
	}, nil
}

// DimensionsResult contains the native width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the native dimensions of an image without additional
// metadata. The image is loaded into the cache if not already present.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
