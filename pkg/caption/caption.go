// Package caption lays out text captions inside rectangular boxes and paints
// them onto an image.
//
// A caption is wrapped greedily on whitespace. When no font size is given the
// largest integer size whose wrapped block fits the box is found by binary
// search; an explicit size is used as-is even when the text overflows. Lines
// are anchored at the top-left corner of the box and spaced by the font's
// line height. An optional stroke is painted by redrawing each line at small
// offsets around the fill position before the fill itself is drawn.
package caption

import (
	"image/color"
)

const (
	// MinFontSize is the smallest size the fit search considers and the
	// fallback when nothing fits.
	MinFontSize = 1
	// MaxFontSize caps the fit search regardless of box height.
	MaxFontSize = 1000
)

// Box is a request to paint one caption.
type Box struct {
	Text string
	X, Y int
	W, H int

	// Font is the selector of a loaded font.
	Font string
	// FontSize is the size in pixels. Zero selects the largest size that fits.
	FontSize int

	// Fill is the text color. Nil paints opaque black.
	Fill color.Color
	// Stroke is the outline color. Nil disables the outline.
	Stroke color.Color
}

// Line is one wrapped line of a caption.
type Line struct {
	Text  string `json:"text"`
	Width int    `json:"width"`
}

// Layout is the wrapped and sized form of a caption, ready to paint.
type Layout struct {
	Size       int    `json:"size"`
	LineHeight int    `json:"line_height"`
	Ascent     int    `json:"ascent"`
	Lines      []Line `json:"lines"`
}

// Height returns the total height of the line block.
func (l Layout) Height() int {
	return len(l.Lines) * l.LineHeight
}

// Width returns the width of the widest line.
func (l Layout) Width() int {
	w := 0
	for _, line := range l.Lines {
		if line.Width > w {
			w = line.Width
		}
	}
	return w
}

// Texts returns the text of every line in order.
func (l Layout) Texts() []string {
	texts := make([]string, len(l.Lines))
	for i, line := range l.Lines {
		texts[i] = line.Text
	}
	return texts
}

// clampDimension treats non-positive box dimensions as one pixel.
func clampDimension(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
