package caption

import (
	"strings"

	"golang.org/x/image/font"
)

// Wrap breaks text into lines no wider than maxWidth pixels when set in face.
//
// Each newline-separated paragraph is wrapped on its own. Words are joined by
// a single space and the whole candidate line is measured, so kerning between
// words is accounted for. A word wider than maxWidth is placed alone on its
// own line and never split. Blank text yields no lines.
func Wrap(text string, face font.Face, maxWidth int) []string {
	var lines []string
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, paragraph := range strings.Split(text, "\n") {
		lines = appendWrapped(lines, strings.Fields(paragraph), face, maxWidth)
	}
	return lines
}

func appendWrapped(lines, words []string, face font.Face, maxWidth int) []string {
	current := ""
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		candidate := current + " " + word
		if MeasureString(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// MeasureString returns the advance width of s in whole pixels, rounded up.
func MeasureString(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// LineHeight returns the distance between consecutive baselines for face:
// ascent plus descent, or the face's reported height when that is larger.
func LineHeight(face font.Face) int {
	m := face.Metrics()
	h := m.Ascent + m.Descent
	if m.Height > h {
		h = m.Height
	}
	if px := h.Ceil(); px > 0 {
		return px
	}
	return 1
}

// Ascent returns the distance from the top of a line to its baseline.
func Ascent(face font.Face) int {
	return face.Metrics().Ascent.Ceil()
}
