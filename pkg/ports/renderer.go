package ports

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// ErrUnsupportedFormat is returned for images that are neither PNG nor JPEG.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Renderer abstracts image codecs and canvas creation.
type Renderer interface {
	// NewCanvas wraps img for painting. The canvas draws into img in place.
	NewCanvas(img *image.RGBA) Canvas

	// DecodeImage decodes PNG or JPEG data and reports the detected format.
	DecodeImage(data []byte) (image.Image, ImageFormat, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ToRGBA returns a copy of img as RGBA with its origin at (0,0).
	ToRGBA(img image.Image) *image.RGBA
}

// Canvas is a mutable painting surface backed by an RGBA image.
type Canvas interface {
	// DrawString draws text with its baseline starting at (x, y).
	DrawString(text string, x, y float64, face font.Face, c color.Color)

	// Image returns the backing image.
	Image() *image.RGBA
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatUnknown ImageFormat = iota
	FormatPNG
	FormatJPEG
)

// String returns the lowercase format name used in requests.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return "unknown"
	}
}

// ContentType returns the MIME type for the format.
func (f ImageFormat) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
