package store

import "sync"

// SelectionMemory persists which document is active between runs.
type SelectionMemory interface {
	// SelectedPath returns the remembered path, or "" if none.
	SelectedPath() string
	// RememberSelected stores path. An empty path forgets the selection.
	RememberSelected(path string) error
}

// MemorySelection is a SelectionMemory that lives only as long as the process.
type MemorySelection struct {
	mu   sync.Mutex
	path string
}

// NewMemorySelection returns a MemorySelection remembering path.
func NewMemorySelection(path string) *MemorySelection {
	return &MemorySelection{path: path}
}

func (m *MemorySelection) SelectedPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

func (m *MemorySelection) RememberSelected(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.path = path
	return nil
}

// Snapshotter keeps a copy of a document before it is overwritten.
type Snapshotter interface {
	Snapshot(path, from string) error
}
