// Package overlay implements the caption stage: it turns request boxes into
// engine boxes, applying per-font color defaults, and paints them.
package overlay

import (
	"context"
	"fmt"
	"image/color"

	"github.com/user/captionbox/pkg/caption"
	"github.com/user/captionbox/pkg/config"
	"github.com/user/captionbox/pkg/pipeline"
	"github.com/user/captionbox/pkg/ports"
)

// DefaultFont is used for boxes that name no font.
const DefaultFont = "arial"

// Style holds the default colors of a font selector.
type Style struct {
	Fill   color.Color
	Stroke color.Color
}

// Stage paints caption boxes onto the loaded image.
type Stage struct {
	engine *caption.Engine
	styles map[string]Style
	logger ports.Logger
}

// NewStage creates a caption stage. fonts supplies the default colors of
// each selector; selectors without an entry paint black with no stroke.
func NewStage(engine *caption.Engine, fonts map[string]config.FontConfig, logger ports.Logger) (*Stage, error) {
	styles := make(map[string]Style, len(fonts))
	for name, fc := range fonts {
		var style Style
		if fc.Color != "" {
			c, err := config.ParseColor(fc.Color)
			if err != nil {
				return nil, fmt.Errorf("font %s color: %w", name, err)
			}
			style.Fill = c
		}
		if fc.Border != "" {
			c, err := config.ParseColor(fc.Border)
			if err != nil {
				return nil, fmt.Errorf("font %s border: %w", name, err)
			}
			style.Stroke = c
		}
		styles[config.NormalizeFontName(name)] = style
	}
	return &Stage{
		engine: engine,
		styles: styles,
		logger: logger.WithComponent("overlay"),
	}, nil
}

// Execute validates and resolves every box, then paints them in order onto
// input.Canvas. Nothing is painted unless every box is valid.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptionInput) (pipeline.CaptionResult, error) {
	result := pipeline.CaptionResult{}

	if input.Canvas == nil {
		return result, fmt.Errorf("no canvas")
	}

	boxes := make([]caption.Box, len(input.Boxes))
	for i, spec := range input.Boxes {
		box, err := s.Resolve(spec)
		if err != nil {
			return result, pipeline.Invalid(fmt.Sprintf("Box %d: %s", i, err), nil)
		}
		boxes[i] = box
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	s.logger.Info("Rendering %d caption boxes", len(boxes))
	img, layouts, err := s.engine.RenderLayouts(input.Canvas, boxes)
	if err != nil {
		return result, err
	}

	result.Image = img
	result.Layouts = layouts
	return result, nil
}

// Resolve converts a request box to an engine box. The font selector is
// lower-cased and defaulted; colors fall back to the font's style.
func (s *Stage) Resolve(spec pipeline.BoxSpec) (caption.Box, error) {
	if spec.W <= 0 || spec.H <= 0 {
		return caption.Box{}, fmt.Errorf("w and h must be positive, got %dx%d", spec.W, spec.H)
	}

	box := caption.Box{
		Text: spec.Text,
		X:    spec.X,
		Y:    spec.Y,
		W:    spec.W,
		H:    spec.H,
		Font: NormalizeFont(spec.Font),
	}

	if spec.FontSize != nil {
		if *spec.FontSize <= 0 {
			return caption.Box{}, fmt.Errorf("fontsize must be positive, got %d", *spec.FontSize)
		}
		box.FontSize = *spec.FontSize
	}

	style := s.styles[box.Font]
	box.Fill, box.Stroke = style.Fill, style.Stroke

	if spec.Color != "" {
		c, err := config.ParseColor(spec.Color)
		if err != nil {
			return caption.Box{}, fmt.Errorf("color: %w", err)
		}
		box.Fill = c
	}
	if spec.Border != "" {
		c, err := config.ParseColor(spec.Border)
		if err != nil {
			return caption.Box{}, fmt.Errorf("border: %w", err)
		}
		box.Stroke = c
	}
	if box.Fill == nil {
		box.Fill = color.Black
	}

	return box, nil
}

// NormalizeFont lower-cases a selector and substitutes DefaultFont for an
// empty one.
func NormalizeFont(name string) string {
	if name = config.NormalizeFontName(name); name == "" {
		return DefaultFont
	}
	return name
}
