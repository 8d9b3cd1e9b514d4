// Package imaging reads source images and writes composed sheets.
//
// It is the boundary between bytes and pixels for the grid compositor: Decode
// and ImageCache turn uploaded or on-disk files into image.Image values, and
// EncodeJPEG turns a finished sheet back into a byte stream with a fixed
// filename and MIME type. Nothing here knows about tiles or sheets.
//
// # Formats
//
// Decoding accepts PNG, JPEG and GIF from the standard library, plus WebP, BMP
// and TIFF from golang.org/x/image. Output is always JPEG.
//
// # Error Handling
//
// Bytes that do not decode as a recognized image produce an
// *UnsupportedFormatError. File system errors from ImageCache are wrapped with
// fmt.Errorf and are not UnsupportedFormatErrors.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Decode and EncodeJPEG are
// stateless.
package imaging
