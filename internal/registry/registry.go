// Package registry provides a global registry of frontends.
// Frontends register themselves in init() functions, allowing the CLI
// to discover and select them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/session"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Frontend renders snapshots of a session and feeds raw player input to its
// arbiter. Frontends never touch the engine; everything they show comes from
// published snapshots.
type Frontend interface {
	// ID returns a unique identifier used by the --ui flag (e.g., "tui").
	ID() string

	// Title returns a human-readable description for listings.
	Title() string

	// Play runs s to completion (or until ctx is cancelled) and returns its
	// result. The frontend passes its own publisher to s.Run.
	Play(ctx context.Context, s *session.Session, env Env) (session.Result, error)
}

// Env is the I/O a frontend plays against.
type Env struct {
	In     io.Reader
	Out    io.Writer
	Store  *storage.Store // optional; used to show high scores
	Logger *log.Logger
}

// Info contains metadata about a registered frontend.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new frontend instance.
type Factory func() Frontend

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a frontend factory to the registry.
// Panics if a frontend with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: frontend %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered frontends, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a frontend by its ID.
func Create(id string) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown frontend %q", id)
	}

	return f(), nil
}

// Exists checks if a frontend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
