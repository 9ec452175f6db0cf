// Package fontstore loads caption fonts once at startup and serves them
// read-only to the caption engine.
package fontstore

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/user/captionbox/pkg/ports"
)

// DPI makes one point equal one pixel.
const DPI = 72

var embedded = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomedium":     gomedium.TTF,
	"gomono":       gomono.TTF,
}

// ErrNoFont is returned when neither a font file nor a fallback is usable.
var ErrNoFont = errors.New("no usable font")

// EmbeddedNames returns the names accepted as fallbacks.
func EmbeddedNames() []string {
	names := make([]string, 0, len(embedded))
	for name := range embedded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec describes where a font selector is loaded from.
type Spec struct {
	Name string
	// Path is a TTF/OTF file. It may be empty or missing.
	Path string
	// Fallback names an embedded Go font used when Path is unusable.
	Fallback string
}

// Font is a parsed font bound to a selector. It is immutable.
type Font struct {
	name   string
	source string
	font   *opentype.Font
}

// Parse parses TTF or OTF data into a Font named name.
func Parse(name string, data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	return &Font{name: name, source: "memory", font: f}, nil
}

// Embedded returns the embedded Go font fallback under selector name.
func Embedded(name, fallback string) (*Font, error) {
	data, ok := embedded[fallback]
	if !ok {
		return nil, fmt.Errorf("font %s: unknown embedded font %q", name, fallback)
	}
	f, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	f.source = "embedded:" + fallback
	return f, nil
}

// Name returns the selector.
func (f *Font) Name() string {
	return f.name
}

// Source returns the file path or embedded font the selector was loaded from.
func (f *Font) Source() string {
	return f.source
}

// Face returns a new unhinted face at size pixels.
func (f *Font) Face(size int) (font.Face, error) {
	if size < 1 {
		return nil, fmt.Errorf("font %s: invalid size %d", f.name, size)
	}
	return opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     DPI,
		Hinting: font.HintingNone,
	})
}

var _ ports.FontResource = (*Font)(nil)

// Store is an immutable selector → font map.
type Store struct {
	fonts map[string]*Font
}

// New creates a Store from already parsed fonts.
func New(fonts ...*Font) *Store {
	s := &Store{fonts: make(map[string]*Font, len(fonts))}
	for _, f := range fonts {
		s.fonts[f.name] = f
	}
	return s
}

// Load reads every spec through fs. A missing or unparsable file falls back
// to the spec's embedded font with a warning.
func Load(specs []Spec, fs ports.FileSystem, logger ports.Logger) (*Store, error) {
	log := logger.WithComponent("fonts")
	fonts := make([]*Font, 0, len(specs))
	for _, spec := range specs {
		f, err := load(spec, fs, log)
		if err != nil {
			return nil, err
		}
		log.Debug("Font %s loaded from %s", f.name, f.source)
		fonts = append(fonts, f)
	}
	return New(fonts...), nil
}

func load(spec Spec, fs ports.FileSystem, log ports.Logger) (*Font, error) {
	if spec.Path != "" {
		f, err := loadFile(spec, fs)
		if err == nil {
			return f, nil
		}
		if spec.Fallback == "" {
			return nil, err
		}
		log.Warn("Font %s unavailable (%s), using embedded %s", spec.Name, err, spec.Fallback)
	}
	if spec.Fallback == "" {
		return nil, fmt.Errorf("font %s: %w", spec.Name, ErrNoFont)
	}
	return Embedded(spec.Name, spec.Fallback)
}

func loadFile(spec Spec, fs ports.FileSystem) (*Font, error) {
	exists, err := fs.Exists(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", spec.Path, err)
	}
	if !exists {
		return nil, fmt.Errorf("font file not found: %s", spec.Path)
	}
	data, err := fs.ReadFile(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", spec.Path, err)
	}
	f, err := Parse(spec.Name, data)
	if err != nil {
		return nil, err
	}
	f.source = spec.Path
	return f, nil
}

// Font returns the font registered under name.
func (s *Store) Font(name string) (ports.FontResource, bool) {
	f, ok := s.fonts[name]
	if !ok {
		return nil, false
	}
	return f, true
}

// Lookup is Font returning the concrete type.
func (s *Store) Lookup(name string) (*Font, bool) {
	f, ok := s.fonts[name]
	return f, ok
}

// Names returns the registered selectors in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.fonts))
	for name := range s.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ ports.FontLookup = (*Store)(nil)
