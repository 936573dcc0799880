package store

import (
	"sync"

	"github.com/thoreinstein/hsv/internal/document"
)

// Active holds the document currently in use. The document and the path it
// was loaded from are always set and cleared together. Safe for concurrent use.
type Active struct {
	mu   sync.RWMutex
	cfg  *document.Configuration
	path string
}

// Set makes cfg, loaded from path, the active document.
func (a *Active) Set(cfg *document.Configuration, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg.Clone()
	a.path = path
}

// Clear removes the active document.
func (a *Active) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = nil
	a.path = ""
}

// Get returns a copy of the active document and its path, or nil and "".
func (a *Active) Get() (*document.Configuration, string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg.Clone(), a.path
}

// Path returns the active document's path, or "".
func (a *Active) Path() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.path
}

// IsSet reports whether a document is active.
func (a *Active) IsSet() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg != nil
}
