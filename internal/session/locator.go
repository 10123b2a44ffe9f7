package session

import (
	"os"
	"strings"
	"sync"
)

// Locator is the externally visible route string, the shareable address of
// what the user is looking at (for the web client this is the URL bar; for
// the terminal client a persisted session route honored on startup).
// Synchronization against controller state is message passing guarded by
// equality checks in both directions, never shared mutation.
type Locator interface {
	Current() string
	Navigate(route string)
}

// MemoryLocator holds the route in memory only.
type MemoryLocator struct {
	mu    sync.Mutex
	route string
}

func NewMemoryLocator(route string) *MemoryLocator {
	return &MemoryLocator{route: route}
}

func (l *MemoryLocator) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.route
}

func (l *MemoryLocator) Navigate(route string) {
	l.mu.Lock()
	l.route = route
	l.mu.Unlock()
}

// FileLocator persists the route to a session file so a later launch can
// restore the last-viewed note. Writes are best effort; a failed write
// loses restore, not correctness.
type FileLocator struct {
	path string

	mu    sync.Mutex
	route string
}

func NewFileLocator(path string) *FileLocator {
	l := &FileLocator{path: path}
	if raw, err := os.ReadFile(path); err == nil {
		l.route = strings.TrimSpace(string(raw))
	}
	return l
}

func (l *FileLocator) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.route
}

func (l *FileLocator) Navigate(route string) {
	l.mu.Lock()
	l.route = route
	l.mu.Unlock()
	_ = os.WriteFile(l.path, []byte(route+"\n"), 0o644)
}
