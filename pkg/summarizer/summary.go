// Package summarizer builds human-readable reports of a captioning run.
package summarizer

import (
	"time"

	"github.com/user/captionbox/pkg/caption"
	"github.com/user/captionbox/pkg/orchestrator"
	"github.com/user/captionbox/pkg/ports"
	"github.com/user/captionbox/pkg/stages/load"
	"github.com/user/captionbox/pkg/stages/overlay"
)

// Summary contains what is worth reporting about one captioning run.
type Summary struct {
	GeneratedAt time.Time

	Source SourceInfo
	Output OutputInfo
	Boxes  []BoxInfo

	DurationMs int
}

// SourceInfo describes the input image.
type SourceInfo struct {
	// Location is the URL, or empty for inline data.
	Location string
	Format   ports.ImageFormat
	Width    int
	Height   int
}

// OutputInfo describes the encoded result.
type OutputInfo struct {
	Path   string
	Format ports.ImageFormat
	Base64 bool
	Bytes  int
}

// BoxInfo pairs a requested box with the layout chosen for it.
type BoxInfo struct {
	Text       string
	Font       string
	X, Y, W, H int
	// Requested is the explicit font size, zero when auto-fitted.
	Requested  int
	Size       int
	LineHeight int
	Lines      []string
}

// Overflows reports whether the laid out block is taller than the box.
func (b BoxInfo) Overflows() bool {
	return len(b.Lines)*b.LineHeight > b.H
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets the source image information.
func (b *Builder) WithSource(location string, format ports.ImageFormat, width, height int) *Builder {
	b.summary.Source = SourceInfo{
		Location: location,
		Format:   format,
		Width:    width,
		Height:   height,
	}
	return b
}

// WithOutput sets the encoded output information.
func (b *Builder) WithOutput(path string, format ports.ImageFormat, base64 bool, size int) *Builder {
	b.summary.Output = OutputInfo{
		Path:   path,
		Format: format,
		Base64: base64,
		Bytes:  size,
	}
	return b
}

// WithBox appends one box and its layout.
func (b *Builder) WithBox(box caption.Box, layout caption.Layout) *Builder {
	b.summary.Boxes = append(b.summary.Boxes, BoxInfo{
		Text:       box.Text,
		Font:       box.Font,
		X:          box.X,
		Y:          box.Y,
		W:          box.W,
		H:          box.H,
		Requested:  box.FontSize,
		Size:       layout.Size,
		LineHeight: layout.LineHeight,
		Lines:      layout.Texts(),
	})
	return b
}

// WithDuration sets the total processing time.
func (b *Builder) WithDuration(d time.Duration) *Builder {
	b.summary.DurationMs = int(d.Milliseconds())
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

// FromRun summarizes a finished orchestrator run. Boxes and layouts are
// matched by index.
func FromRun(req orchestrator.Request, result orchestrator.RunResult, outputPath string) *Summary {
	b := NewBuilder().
		WithOutput(outputPath, result.Output.Format, result.Output.Base64, len(result.Output.Data)).
		WithDuration(result.Duration)

	location := ""
	if load.IsURL(req.Image) {
		location = req.Image
	}
	b.WithSource(location, result.SourceFormat, result.Width, result.Height)

	for i, spec := range req.Boxes {
		if i >= len(result.Layouts) {
			break
		}
		box := caption.Box{
			Text: spec.Text,
			X:    spec.X,
			Y:    spec.Y,
			W:    spec.W,
			H:    spec.H,
			Font: overlay.NormalizeFont(spec.Font),
		}
		if spec.FontSize != nil {
			box.FontSize = *spec.FontSize
		}
		b.WithBox(box, result.Layouts[i])
	}
	return b.Build()
}
