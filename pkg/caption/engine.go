package caption

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"

	"github.com/user/captionbox/pkg/ports"
)

// Engine lays out and paints caption boxes with a fixed set of fonts.
// It holds no per-request state and may be shared between goroutines.
type Engine struct {
	fonts    ports.FontLookup
	renderer ports.Renderer
	logger   ports.Logger
}

// NewEngine creates an Engine that resolves fonts through fonts and paints
// through canvases created by renderer.
func NewEngine(fonts ports.FontLookup, renderer ports.Renderer, logger ports.Logger) *Engine {
	return &Engine{
		fonts:    fonts,
		renderer: renderer,
		logger:   logger.WithComponent("caption"),
	}
}

// Validate checks that every box names a loaded font.
func (e *Engine) Validate(boxes []Box) error {
	for i, box := range boxes {
		if _, ok := e.fonts.Font(box.Font); !ok {
			return &UnknownFontError{Index: i, Font: box.Font}
		}
	}
	return nil
}

// LayoutBox computes the layout of a single box without painting it.
func (e *Engine) LayoutBox(box Box) (Layout, error) {
	res, ok := e.fonts.Font(box.Font)
	if !ok {
		return Layout{}, &UnknownFontError{Font: box.Font}
	}
	layout, _, err := e.layout(box, res)
	return layout, err
}

// Render paints boxes onto canvas in order and returns canvas.
//
// Every font selector is checked before anything is drawn: an unknown
// selector returns an error matching ErrUnknownFont and leaves canvas
// untouched. Overflowing text is never an error.
func (e *Engine) Render(canvas *image.RGBA, boxes []Box) (*image.RGBA, error) {
	out, _, err := e.RenderLayouts(canvas, boxes)
	return out, err
}

// RenderLayouts is Render that also returns the layout used for each box.
func (e *Engine) RenderLayouts(canvas *image.RGBA, boxes []Box) (*image.RGBA, []Layout, error) {
	if err := e.Validate(boxes); err != nil {
		return canvas, nil, err
	}

	surface := e.renderer.NewCanvas(canvas)
	layouts := make([]Layout, len(boxes))
	for i, box := range boxes {
		res, _ := e.fonts.Font(box.Font)
		layout, face, err := e.layout(box, res)
		if err != nil {
			return canvas, layouts, fmt.Errorf("box %d: %w", i, err)
		}
		layouts[i] = layout
		if face == nil {
			e.logger.Debug("Box %d: empty text, skipped", i)
			continue
		}
		e.logger.Debug("Box %d: %d lines at size %d (%dx%d in %dx%d)",
			i, len(layout.Lines), layout.Size, layout.Width(), layout.Height(), box.W, box.H)
		Paint(surface, layout, box, face)
	}
	return surface.Image(), layouts, nil
}

// layout sizes and wraps box. The returned face is nil when the box has no
// text to paint.
func (e *Engine) layout(box Box, res ports.FontResource) (Layout, font.Face, error) {
	if strings.TrimSpace(box.Text) == "" {
		return Layout{Size: box.FontSize}, nil, nil
	}

	var (
		layout Layout
		err    error
	)
	if box.FontSize > 0 {
		layout, err = LayoutAt(box.Text, res, box.FontSize, box.W)
	} else {
		layout, err = FitSize(box.Text, res, box.W, box.H)
	}
	if err != nil {
		return Layout{}, nil, err
	}

	face, err := res.Face(layout.Size)
	if err != nil {
		return Layout{}, nil, fmt.Errorf("face %s at %d: %w", res.Name(), layout.Size, err)
	}
	return layout, face, nil
}
