package mocks

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/user/captionbox/pkg/ports"
)

// FileSystem is an in-memory ports.FileSystem. Paths are compared after
// filepath.Clean. Set a *Func field to override one operation.
type FileSystem struct {
	mu     sync.RWMutex
	files  map[string][]byte
	dirs   map[string]bool
	writes map[string]int

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
}

// NewFileSystem returns an empty in-memory filesystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		writes: make(map[string]int),
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	path = filepath.Clean(path)
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dirs[path] {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return append([]byte(nil), data...), nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	path = filepath.Clean(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirs[path] {
		return fmt.Errorf("%s is a directory", path)
	}
	m.files[path] = append([]byte(nil), data...)
	m.writes[path]++
	return nil
}

// MkdirAll records path and every parent as a directory.
func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for dir := filepath.Clean(path); ; dir = filepath.Dir(dir) {
		if _, isFile := m.files[dir]; isFile {
			return fmt.Errorf("%s is a file", dir)
		}
		m.dirs[dir] = true
		if parent := filepath.Dir(dir); parent == dir {
			return nil
		}
	}
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	path = filepath.Clean(path)
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, isFile := m.files[path]
	return isFile || m.dirs[path], nil
}

// AddFile seeds a file without counting it as a write.
func (m *FileSystem) AddFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = data
}

// File returns the current contents of path.
func (m *FileSystem) File(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

// Files returns a copy of every stored file keyed by cleaned path.
func (m *FileSystem) Files() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.files))
	for k, v := range m.files {
		out[k] = v
	}
	return out
}

// Writes returns how many times path was written through WriteFile.
func (m *FileSystem) Writes(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[filepath.Clean(path)]
}

var _ ports.FileSystem = (*FileSystem)(nil)
