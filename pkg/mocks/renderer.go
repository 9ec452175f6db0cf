package mocks

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"

	"github.com/user/captionbox/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Without overrides it hands out recording canvases.
type Renderer struct {
	NewCanvasFunc   func(img *image.RGBA) ports.Canvas
	DecodeImageFunc func(data []byte) (image.Image, ports.ImageFormat, error)
	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	mu       sync.Mutex
	Canvases []*Canvas
}

func (m *Renderer) NewCanvas(img *image.RGBA) ports.Canvas {
	if m.NewCanvasFunc != nil {
		return m.NewCanvasFunc(img)
	}
	c := &Canvas{img: img}
	m.mu.Lock()
	m.Canvases = append(m.Canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, ports.ImageFormat, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), ports.FormatPNG, nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte(format.String()), nil
}

func (m *Renderer) ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	return image.NewRGBA(img.Bounds())
}

var _ ports.Renderer = (*Renderer)(nil)

// DrawCall is one recorded Canvas.DrawString call.
type DrawCall struct {
	Text  string
	X, Y  float64
	Color color.Color
}

// Canvas is a mock ports.Canvas that records draw calls without painting.
type Canvas struct {
	img   *image.RGBA
	Calls []DrawCall
}

func (m *Canvas) DrawString(text string, x, y float64, face font.Face, c color.Color) {
	m.Calls = append(m.Calls, DrawCall{Text: text, X: x, Y: y, Color: c})
}

func (m *Canvas) Image() *image.RGBA {
	return m.img
}

// CallsWithColor returns the recorded calls painted in c.
func (m *Canvas) CallsWithColor(c color.Color) []DrawCall {
	r, g, b, a := c.RGBA()
	var out []DrawCall
	for _, call := range m.Calls {
		cr, cg, cb, ca := call.Color.RGBA()
		if cr == r && cg == g && cb == b && ca == a {
			out = append(out, call)
		}
	}
	return out
}

var _ ports.Canvas = (*Canvas)(nil)
