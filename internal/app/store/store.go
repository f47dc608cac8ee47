// Package store provides playlist storage for the generation engine.
package store

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/emre2821/echodj/internal/domain/playlist"
)

// ErrNotFound is returned when a playlist id is unknown.
var ErrNotFound = errors.New("playlist not found")

// Store holds generated playlists keyed by id. Implementations must
// support concurrent insertion; ids are fresh UUIDs so writers never
// contend for the same key.
type Store interface {
	// Put stores a playlist under its id.
	Put(p *playlist.DynamicPlaylist)
	// Get returns the playlist with the given id or ErrNotFound.
	Get(id string) (*playlist.DynamicPlaylist, error)
	// Lock acquires the per-playlist mutation lock and returns its
	// release function. Adaptation of the same playlist id must
	// serialize through this lock.
	Lock(id string) (release func())
}

// Memory is the in-memory Store implementation.
type Memory struct {
	mu        sync.RWMutex
	playlists map[string]*playlist.DynamicPlaylist
	locks     map[string]*sync.Mutex
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		playlists: make(map[string]*playlist.DynamicPlaylist),
		locks:     make(map[string]*sync.Mutex),
	}
}

// Put implements Store.
func (m *Memory) Put(p *playlist.DynamicPlaylist) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playlists[p.ID] = p
	if _, ok := m.locks[p.ID]; !ok {
		m.locks[p.ID] = &sync.Mutex{}
	}
}

// Get implements Store.
func (m *Memory) Get(id string) (*playlist.DynamicPlaylist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.playlists[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return p, nil
}

// Lock implements Store. Locking an unknown id creates its lock so the
// caller can still serialize before checking existence.
func (m *Memory) Lock(id string) (release func()) {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
