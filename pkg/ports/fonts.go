package ports

import "golang.org/x/image/font"

// FontResource is a loaded scalable font bound to a selector name.
// Implementations are immutable and safe for concurrent use.
type FontResource interface {
	// Name returns the selector the font was registered under.
	Name() string

	// Face returns a new face at size pixels. Faces are not safe for
	// concurrent use, so callers must not share them across goroutines.
	Face(size int) (font.Face, error)
}

// FontLookup resolves font selectors to loaded fonts.
type FontLookup interface {
	// Font returns the font registered under name.
	Font(name string) (FontResource, bool)

	// Names returns the registered selectors in sorted order.
	Names() []string
}
