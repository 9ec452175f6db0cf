package caption

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/user/captionbox/pkg/ports"
)

// StrokeRadius returns the outline radius in pixels for a font size.
func StrokeRadius(size int) int {
	if r := size / 15; r > 1 {
		return r
	}
	return 1
}

// strokeOffsets returns every integer offset within radius r of the origin,
// excluding the origin. For r == 1 these are the 8 neighbouring pixels.
func strokeOffsets(r int) []image.Point {
	var offsets []image.Point
	limit := r*r + r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx*dx+dy*dy > limit {
				continue
			}
			offsets = append(offsets, image.Point{X: dx, Y: dy})
		}
	}
	return offsets
}

// Paint draws layout onto canvas, anchored at the top-left corner of box.
// Line i has its baseline at box.Y + i*LineHeight + Ascent. For each line the
// stroke halo is drawn first, then the fill on top of it.
func Paint(canvas ports.Canvas, layout Layout, box Box, face font.Face) {
	fill := box.Fill
	if fill == nil {
		fill = color.Black
	}

	var offsets []image.Point
	if box.Stroke != nil && !sameColor(box.Stroke, fill) {
		offsets = strokeOffsets(StrokeRadius(layout.Size))
	}

	x := float64(box.X)
	for i, line := range layout.Lines {
		baseline := float64(box.Y + i*layout.LineHeight + layout.Ascent)
		for _, off := range offsets {
			canvas.DrawString(line.Text, x+float64(off.X), baseline+float64(off.Y), face, box.Stroke)
		}
		canvas.DrawString(line.Text, x, baseline, face, fill)
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
