package caption

import (
	"errors"
	"fmt"
)

// ErrUnknownFont is matched by errors.Is for any *UnknownFontError.
var ErrUnknownFont = errors.New("unknown font")

// UnknownFontError reports a box whose font selector is not loaded.
type UnknownFontError struct {
	Index int
	Font  string
}

func (e *UnknownFontError) Error() string {
	return fmt.Sprintf("box %d: unknown font %q", e.Index, e.Font)
}

// Is makes errors.Is(err, ErrUnknownFont) succeed.
func (e *UnknownFontError) Is(target error) bool {
	return target == ErrUnknownFont
}
