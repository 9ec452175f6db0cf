package caption

import (
	"fmt"

	"golang.org/x/image/font"

	"github.com/user/captionbox/pkg/ports"
)

// Fits reports whether lines set in face fit inside a w×h box: every line is
// at most w pixels wide and the block is at most h pixels tall.
func Fits(lines []string, face font.Face, w, h int) bool {
	if len(lines)*LineHeight(face) > h {
		return false
	}
	for _, line := range lines {
		if MeasureString(face, line) > w {
			return false
		}
	}
	return true
}

// FitSize returns the layout at the largest integer size in
// [MinFontSize, min(h, MaxFontSize)] whose wrapped text fits a w×h box.
// When no size fits, the layout at MinFontSize is returned instead.
//
// The search relies on the fit predicate being monotonic: a larger size never
// yields narrower lines or a shorter block for the same text and width.
func FitSize(text string, res ports.FontResource, w, h int) (Layout, error) {
	w, h = clampDimension(w), clampDimension(h)

	lo, hi := MinFontSize, h
	if hi > MaxFontSize {
		hi = MaxFontSize
	}

	var (
		best  Layout
		found bool
	)
	for lo <= hi {
		size := lo + (hi-lo)/2
		face, err := res.Face(size)
		if err != nil {
			return Layout{}, fmt.Errorf("face %s at %d: %w", res.Name(), size, err)
		}
		lines := Wrap(text, face, w)
		if Fits(lines, face, w, h) {
			best = newLayout(size, face, lines)
			found = true
			lo = size + 1
		} else {
			hi = size - 1
		}
	}
	if found {
		return best, nil
	}
	return LayoutAt(text, res, MinFontSize, w)
}

// LayoutAt wraps text at a fixed size without checking the box height.
func LayoutAt(text string, res ports.FontResource, size, w int) (Layout, error) {
	face, err := res.Face(size)
	if err != nil {
		return Layout{}, fmt.Errorf("face %s at %d: %w", res.Name(), size, err)
	}
	return newLayout(size, face, Wrap(text, face, clampDimension(w))), nil
}

func newLayout(size int, face font.Face, texts []string) Layout {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Text: text, Width: MeasureString(face, text)}
	}
	return Layout{
		Size:       size,
		LineHeight: LineHeight(face),
		Ascent:     Ascent(face),
		Lines:      lines,
	}
}
