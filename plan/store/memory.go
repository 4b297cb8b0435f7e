// Package store provides ProfileStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/retirement-engine/plan"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	profiles map[string]plan.ProfileSnapshot
}

func NewMemory() *Memory {
	return &Memory{profiles: make(map[string]plan.ProfileSnapshot)}
}

var _ plan.ProfileStore = (*Memory)(nil)

// GetProfile returns a copy of the stored profile.
func (m *Memory) GetProfile(_ context.Context, id string) (*plan.ProfileSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, plan.ErrProfileNotFound
	}
	out := p
	return &out, nil
}

// SaveProfile creates or replaces the profile record.
func (m *Memory) SaveProfile(_ context.Context, p plan.ProfileSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[p.ID] = p
	return nil
}

// UpdateContribution replaces the persisted election. Writes are serialized
// by the store lock, honoring the at-most-one-writer requirement.
func (m *Memory) UpdateContribution(_ context.Context, id string, e plan.ContributionElection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		return plan.ErrProfileNotFound
	}
	p.Contribution = e
	m.profiles[id] = p
	return nil
}
