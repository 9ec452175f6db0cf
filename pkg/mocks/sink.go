package mocks

import (
	"image"
	"sync"

	"github.com/user/captionbox/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Input      image.Image
	LayoutJSON []byte
	Output     image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveInput(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Input = img
	return nil
}

func (m *DebugSink) SaveLayoutJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LayoutJSON = data
	return nil
}

func (m *DebugSink) SaveOutput(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Output = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
