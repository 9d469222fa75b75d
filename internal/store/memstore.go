package store

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"kitchen-rush/internal/room"
)

const (
	letters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength = 4
	// Attempts at a free code before giving up.
	maxAttempts = 1000
)

var ErrNoFreeCode = errors.New("no free room code")

// MemoryStore is the registry of open rooms. It never takes a room's lock.
type MemoryStore struct {
	mu      sync.RWMutex
	rooms   map[string]*room.Room
	players map[string]string
	rng     *rand.Rand
}

var _ room.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:   map[string]*room.Room{},
		players: map[string]string{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MemoryStore) randCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = letters[m.rng.Intn(len(letters))]
	}
	return string(b)
}

// Create reserves a fresh code and registers the room built for it. build
// runs under the registry lock and must not lock the room it returns.
func (m *MemoryStore) Create(build func(code string) *room.Room) (*room.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < maxAttempts; i++ {
		code := m.randCode()
		if _, taken := m.rooms[code]; taken {
			continue
		}
		r := build(code)
		m.rooms[code] = r
		return r, nil
	}
	return nil, ErrNoFreeCode
}

func (m *MemoryStore) Get(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

// Delete removes the room only if code still maps to r.
func (m *MemoryStore) Delete(code string, r *room.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.rooms[code]; ok && cur == r {
		delete(m.rooms, code)
	}
}

// Active lists rooms with a round in play, ordered by code.
func (m *MemoryStore) Active() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		if r.Active() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// List returns every open room ordered by code.
func (m *MemoryStore) List() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (m *MemoryStore) BindPlayer(playerID, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[playerID] = code
}

func (m *MemoryStore) UnbindPlayer(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, playerID)
}

func (m *MemoryStore) RoomOf(playerID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.players[playerID]
	return code, ok
}
