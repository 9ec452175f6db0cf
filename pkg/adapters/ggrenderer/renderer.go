// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/user/captionbox/pkg/ports"
)

// ErrUnsupportedFormat is returned when data is neither PNG nor JPEG.
var ErrUnsupportedFormat = ports.ErrUnsupportedFormat

// DefaultJPEGQuality is used when EncodeImage is called with quality <= 0.
const DefaultJPEGQuality = 90

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// NewCanvas wraps img in a gg context that paints into img directly.
func (r *Renderer) NewCanvas(img *image.RGBA) ports.Canvas {
	return &Canvas{dc: gg.NewContextForRGBA(img), img: img}
}

// DecodeImage decodes PNG or JPEG data. Other formats registered with the
// image package are rejected with ErrUnsupportedFormat.
func (r *Renderer) DecodeImage(data []byte) (image.Image, ports.ImageFormat, error) {
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ports.FormatUnknown, fmt.Errorf("decode image: %w", err)
	}
	switch name {
	case "png":
		return img, ports.FormatPNG, nil
	case "jpeg":
		return img, ports.FormatJPEG, nil
	default:
		return nil, ports.FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// EncodeImage encodes an image to the specified format. JPEG output is
// flattened onto opaque white first since JPEG has no alpha channel.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, flatten(img), opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// ToRGBA copies img into a new RGBA image whose bounds start at (0,0).
func (r *Renderer) ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc  *gg.Context
	img *image.RGBA
}

// DrawString draws text with its baseline starting at (x, y).
func (c *Canvas) DrawString(text string, x, y float64, face font.Face, col color.Color) {
	c.dc.SetFontFace(face)
	c.dc.SetColor(col)
	c.dc.DrawString(text, x, y)
}

// Image returns the image being painted.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
