// Package indexes maintains the ordered id-lists that make list queries
// cheap: the global post list, per-author and per-category post lists,
// per-course material lists and per-user certificate lists.
package indexes

import (
	"context"
	"sync"

	"github.com/skillwave-academy/content-service/kv"
)

// Manager performs read-modify-write updates on id-lists stored in the KV
// store. Updates to the same index key are serialized behind a per-key
// mutex so two concurrent writers cannot drop each other's membership.
// Index order is newest-first, but readers re-sort by entity timestamp
// anyway; the list is a membership set first and an ordering hint second.
type Manager struct {
	store kv.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(store kv.Store) *Manager {
	return &Manager{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (m *Manager) lockKey(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	return lock
}

// Get returns the id-list stored under key, empty if the key is absent.
func (m *Manager) Get(ctx context.Context, key string) ([]string, error) {
	var ids []string
	if _, err := m.store.Get(ctx, key, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Add prepends id to the list under key, creating the list if absent. Adding
// an id that is already present is a no-op, so a retried create cannot
// produce a duplicate membership.
func (m *Manager) Add(ctx context.Context, key, id string) error {
	lock := m.lockKey(key)
	lock.Lock()
	defer lock.Unlock()

	ids, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}

	updated := make([]string, 0, len(ids)+1)
	updated = append(updated, id)
	updated = append(updated, ids...)
	return m.store.Set(ctx, key, updated)
}

// Remove filters id out of the list under key. Removing an absent id is a
// no-op.
func (m *Manager) Remove(ctx context.Context, key, id string) error {
	lock := m.lockKey(key)
	lock.Lock()
	defer lock.Unlock()

	ids, err := m.Get(ctx, key)
	if err != nil {
		return err
	}

	updated := ids[:0]
	for _, existing := range ids {
		if existing != id {
			updated = append(updated, existing)
		}
	}
	if len(updated) == len(ids) {
		return nil
	}
	return m.store.Set(ctx, key, updated)
}

// Move transfers id from the list under oldKey to the list under newKey.
// Used when a blog post changes category.
func (m *Manager) Move(ctx context.Context, oldKey, newKey, id string) error {
	if err := m.Remove(ctx, oldKey, id); err != nil {
		return err
	}
	return m.Add(ctx, newKey, id)
}
