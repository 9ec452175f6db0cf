package pipeline

import (
	"errors"
	"image"

	"github.com/user/captionbox/pkg/caption"
	"github.com/user/captionbox/pkg/ports"
)

// ErrInvalidRequest is matched by every error caused by the caller's input
// rather than by the service.
var ErrInvalidRequest = errors.New("invalid request")

// RequestError is a client error. Detail is the message returned to the
// caller; Err keeps the underlying cause for errors.Is and errors.As.
type RequestError struct {
	Detail string
	Err    error
}

// Invalid returns a RequestError with detail, wrapping err if not nil.
func Invalid(detail string, err error) *RequestError {
	return &RequestError{Detail: detail, Err: err}
}

func (e *RequestError) Error() string {
	return e.Detail
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidRequest) succeed.
func (e *RequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// =============================================================================
// Load Stage Types
// =============================================================================

// LoadInput names the source image: an http(s) URL or base64 data,
// optionally with a data: URI prefix.
type LoadInput struct {
	Source string
}

// LoadResult is the decoded source image.
type LoadResult struct {
	Image  *image.RGBA
	Format ports.ImageFormat
}

// =============================================================================
// Caption Stage Types
// =============================================================================

// BoxSpec is a caption box as it arrives from a caller. Colors are unparsed
// and the font may be empty or mixed case.
type BoxSpec struct {
	Text     string `json:"text" yaml:"text"`
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	W        int    `json:"w" yaml:"w"`
	H        int    `json:"h" yaml:"h"`
	Font     string `json:"font,omitempty" yaml:"font,omitempty"`
	FontSize *int   `json:"fontsize,omitempty" yaml:"fontsize,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Border   string `json:"border,omitempty" yaml:"border,omitempty"`
}

// CaptionInput is the canvas to paint and the boxes to paint on it.
type CaptionInput struct {
	Canvas *image.RGBA
	Boxes  []BoxSpec
}

// CaptionResult is the painted canvas and the layout chosen for each box.
type CaptionResult struct {
	Image   *image.RGBA
	Layouts []caption.Layout
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput describes how to serialize the captioned image.
type EncodeInput struct {
	Image image.Image
	// Format is the requested output format, e.g. "png" or "b64/jpeg".
	// Empty means base64 in the source format.
	Format       string
	SourceFormat ports.ImageFormat
}

// EncodeResult is the serialized image. When Base64 is set, Data holds the
// base64 text rather than raw image bytes.
type EncodeResult struct {
	Data   []byte
	Format ports.ImageFormat
	Base64 bool
}

// ContentType returns the MIME type of a raw result.
func (r EncodeResult) ContentType() string {
	return r.Format.ContentType()
}
