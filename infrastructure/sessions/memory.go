package sessions

import (
	"context"
	"sync"
	"time"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/checkout"
)

// MemoryStore keeps checkout sessions in process memory. Used for local
// development and tests where Redis is not configured; sessions do not
// survive a restart.
type MemoryStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	items     map[string]memoryItem
	done      chan struct{}
	closeOnce sync.Once
}

type memoryItem struct {
	session   checkout.Session
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	store := &MemoryStore{
		ttl:   ttl,
		items: make(map[string]memoryItem),
		done:  make(chan struct{}),
	}

	go store.cleanupExpired()

	return store
}

// Close stops the cleanup goroutine. Idempotent.
func (m *MemoryStore) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*checkout.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, exists := m.items[id]
	if !exists || time.Now().After(item.expiresAt) {
		return nil, ports.ErrSessionNotFound
	}

	sess := item.session
	return &sess, nil
}

func (m *MemoryStore) Save(ctx context.Context, sess *checkout.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[sess.ID] = memoryItem{
		session:   *sess,
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, id)
	return nil
}

func (m *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for id, item := range m.items {
				if now.After(item.expiresAt) {
					delete(m.items, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
