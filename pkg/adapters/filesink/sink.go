// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/user/captionbox/pkg/ports"
)

// Sink writes the intermediate images and layouts of a render into a
// directory. Each Save call overwrites the previous file of the same kind.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer

	mu sync.Mutex
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveInput saves the decoded source image as input.png.
func (s *Sink) SaveInput(img image.Image) error {
	return s.savePNG("input.png", img)
}

// SaveLayoutJSON saves the caption layouts as layout.json.
func (s *Sink) SaveLayoutJSON(data []byte) error {
	return s.write("layout.json", data)
}

// SaveOutput saves the captioned image as output.png.
func (s *Sink) SaveOutput(img image.Image) error {
	return s.savePNG("output.png", img)
}

func (s *Sink) savePNG(name string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.write(name, data)
}

func (s *Sink) write(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
