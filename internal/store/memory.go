// internal/store/memory.go
//
// Session stores for in-progress Distle games.
//
// Characteristics of the in-memory implementation:
//   - Stores snapshots of *game.Game keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing game IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/distle/internal/game"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the persistence interface for game sessions.
// Implementations: memory (this file) and Redis (redis.go).
type Store interface {
	// Save persists or updates a game state.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	// Returns ErrNotFound if the game is not stored.
	Get(ctx context.Context, id string) (*game.Game, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save stores a copy of g so later mutation by the caller is not visible
// until the next Save, matching the Redis store.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = clone(g)
	return nil
}

// Get looks up a game by ID and returns a private copy.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return clone(g), nil
	}
	return nil, ErrNotFound
}

func clone(g *game.Game) *game.Game {
	c := *g
	c.Turns = append([]game.Turn(nil), g.Turns...)
	return &c
}
