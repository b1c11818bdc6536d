// internal/portfolio/store.go
package portfolio

import (
	"sort"
	"sync"

	"github.com/Nikhil170404/Quantapp/internal/core"
	"github.com/Nikhil170404/Quantapp/internal/metrics"
	"go.uber.org/zap"
)

// Store keys accounts by owner. Each owner gets at most one account;
// operations against different owners need no coordination.
type Store interface {
	// Get returns the owner's account, or false if none exists.
	Get(owner string) (*Account, bool)
	// GetOrCreate returns the owner's account, creating it on first
	// use.
	GetOrCreate(owner string) *Account
	// Delete removes the owner's account.
	Delete(owner string) error
	// Owners lists the owner keys, sorted.
	Owners() []string
}

// MemoryStore is an in-memory account store.
type MemoryStore struct {
	accounts map[string]*Account
	cfg      Config
	logger   *zap.Logger
	metrics  *metrics.Registry
	mu       sync.RWMutex
}

// NewMemoryStore creates a store whose accounts share the given config,
// logger and metrics.
func NewMemoryStore(cfg Config, logger *zap.Logger, m *metrics.Registry) *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*Account),
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
	}
}

// Get returns the owner's account, or false if none exists.
func (s *MemoryStore) Get(owner string) (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[owner]
	return a, ok
}

// GetOrCreate returns the owner's account, creating it on first use.
func (s *MemoryStore) GetOrCreate(owner string) *Account {
	s.mu.RLock()
	a, ok := s.accounts[owner]
	s.mu.RUnlock()
	if ok {
		return a
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[owner]; ok {
		return a
	}
	a = NewAccount(owner, s.cfg, s.logger, s.metrics)
	s.accounts[owner] = a
	return a
}

// Delete removes the owner's account.
func (s *MemoryStore) Delete(owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[owner]; !ok {
		return core.Errorf(core.ErrNoData, "no account for owner %s", owner)
	}
	delete(s.accounts, owner)
	return nil
}

// Owners lists the owner keys, sorted.
func (s *MemoryStore) Owners() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make([]string, 0, len(s.accounts))
	for owner := range s.accounts {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}
