package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

const (
	// OutputFilename is the download name paired with every composed sheet.
	OutputFilename = "output.jpg"

	// OutputMimeType is the MIME type of OutputFilename.
	OutputMimeType = "image/jpeg"

	// DefaultJPEGQuality suits print proofing.
	DefaultJPEGQuality = 95
)

// Output is an encoded sheet ready for delivery.
type Output struct {
	Filename string
	MimeType string
	Data     []byte
}

// Base64 returns Data in standard base64 encoding.
func (o *Output) Base64() string {
	return base64.StdEncoding.EncodeToString(o.Data)
}

// EncodeJPEG serializes img to an in-memory JPEG at the given quality (1-100).
// Encoding is deterministic: the same pixels and quality give the same bytes.
func EncodeJPEG(img image.Image, quality int) (*Output, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality %d out of range 1-100", quality)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &Output{
		Filename: OutputFilename,
		MimeType: OutputMimeType,
		Data:     buf.Bytes(),
	}, nil
}
