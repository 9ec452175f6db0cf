// Package encode implements the output stage: it serializes the captioned
// image as PNG or JPEG, raw or base64.
package encode

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/user/captionbox/pkg/pipeline"
	"github.com/user/captionbox/pkg/ports"
)

// MsgInvalidFormat is returned to callers for an unknown image_format.
const MsgInvalidFormat = "Unsupported image_format. Use png, jpeg, jpg, b64/png, b64/jpeg or b64/jpg."

// Output is a resolved output format.
type Output struct {
	Format ports.ImageFormat
	Base64 bool
}

// ParseOutput resolves a requested image_format. An empty request means
// base64 in the source format. Matching is case-insensitive.
func ParseOutput(requested string, source ports.ImageFormat) (Output, error) {
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested == "" {
		if source == ports.FormatUnknown {
			source = ports.FormatPNG
		}
		return Output{Format: source, Base64: true}, nil
	}

	out := Output{}
	name := requested
	if rest, ok := strings.CutPrefix(requested, "b64/"); ok {
		out.Base64 = true
		name = rest
	}
	switch name {
	case "png":
		out.Format = ports.FormatPNG
	case "jpeg", "jpg":
		out.Format = ports.FormatJPEG
	default:
		return Output{}, pipeline.Invalid(MsgInvalidFormat, nil)
	}
	return out, nil
}

// Stage encodes the final image.
type Stage struct {
	renderer ports.Renderer
	quality  int
	logger   ports.Logger
}

// NewStage creates a new encode stage. quality applies to JPEG output.
func NewStage(renderer ports.Renderer, quality int, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		quality:  quality,
		logger:   logger.WithComponent("encode"),
	}
}

// Execute encodes input.Image in the requested format.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	if input.Image == nil {
		return result, fmt.Errorf("no image to encode")
	}

	out, err := ParseOutput(input.Format, input.SourceFormat)
	if err != nil {
		return result, err
	}

	select {
	case <-ctx.Done():
		return result, ctx.Err()
	default:
	}

	s.logger.Debug("Encoding %s (base64: %t)", out.Format, out.Base64)
	data, err := s.renderer.EncodeImage(input.Image, out.Format, s.quality)
	if err != nil {
		return result, fmt.Errorf("encode %s: %w", out.Format, err)
	}
	s.logger.Info("Image encoded: %d bytes", len(data))

	if out.Base64 {
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
		base64.StdEncoding.Encode(encoded, data)
		data = encoded
	}

	result.Data = data
	result.Format = out.Format
	result.Base64 = out.Base64
	return result, nil
}
