// Package stats keeps the mulligan tally: five success counters the player
// maintains by hand and a total that counts confirmed mulligans.
package stats

import (
	"context"
	"errors"
	"sync"
)

// Counters is the number of success counters in a tally.
const Counters = 5

// DefaultProfile is used when a caller has no profile name.
const DefaultProfile = "default"

var ErrBadCounter = errors.New("stats: counter index out of range")

type Tally struct {
	Success [Counters]int `json:"success"`
	Total   int           `json:"total"`
}

// Store persists one tally per profile. New profiles start at zero.
// Counter values are clamped at zero.
type Store interface {
	Get(ctx context.Context, profile string) (Tally, error)
	IncrementTotal(ctx context.Context, profile string) (Tally, error)
	SetSuccess(ctx context.Context, profile string, i, n int) (Tally, error)
	SetTotal(ctx context.Context, profile string, n int) (Tally, error)
	Reset(ctx context.Context, profile string) (Tally, error)
	Close() error
}

func normalizeProfile(profile string) string {
	if profile == "" {
		return DefaultProfile
	}
	return profile
}

func checkCounter(i int) error {
	if i < 0 || i >= Counters {
		return ErrBadCounter
	}
	return nil
}

// --- MemoryStore ---

type MemoryStore struct {
	mu      sync.Mutex
	tallies map[string]Tally
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tallies: make(map[string]Tally)}
}

func (m *MemoryStore) Get(_ context.Context, profile string) (Tally, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tallies[normalizeProfile(profile)], nil
}

func (m *MemoryStore) update(profile string, fn func(*Tally)) Tally {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile = normalizeProfile(profile)
	t := m.tallies[profile]
	fn(&t)
	m.tallies[profile] = t
	return t
}

func (m *MemoryStore) IncrementTotal(_ context.Context, profile string) (Tally, error) {
	return m.update(profile, func(t *Tally) { t.Total++ }), nil
}

func (m *MemoryStore) SetSuccess(_ context.Context, profile string, i, n int) (Tally, error) {
	if err := checkCounter(i); err != nil {
		return Tally{}, err
	}
	return m.update(profile, func(t *Tally) { t.Success[i] = max(n, 0) }), nil
}

func (m *MemoryStore) SetTotal(_ context.Context, profile string, n int) (Tally, error) {
	return m.update(profile, func(t *Tally) { t.Total = max(n, 0) }), nil
}

func (m *MemoryStore) Reset(_ context.Context, profile string) (Tally, error) {
	return m.update(profile, func(t *Tally) { *t = Tally{} }), nil
}

func (m *MemoryStore) Close() error {
	return nil
}
