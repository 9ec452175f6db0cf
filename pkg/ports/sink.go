package ports

import (
	"image"
)

// DebugSink receives intermediate results of a render for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveInput saves the decoded source image.
	SaveInput(img image.Image) error

	// SaveLayoutJSON saves the computed caption layouts as JSON.
	SaveLayoutJSON(data []byte) error

	// SaveOutput saves the captioned image before encoding.
	SaveOutput(img image.Image) error
}
