// Package cache is an explicit keyed memoization table owned by the fetch
// layer. An entry lives for the whole process: no TTL, no eviction. A key is
// only ever fetched again if the arguments that form it change, or if the
// refresh daemon overwrites it.
package cache

import (
	"strings"
	"sync"
)

type Table[V any] struct {
	mu      sync.Mutex
	entries map[string]V
}

func New[V any]() *Table[V] {
	return &Table[V]{entries: map[string]V{}}
}

// Key builds a memoization key from a logical endpoint name and its call
// arguments.
func Key(endpoint string, args ...string) string {
	return endpoint + "(" + strings.Join(args, ",") + ")"
}

// Do returns the cached value for key, invoking fetch at most once per
// distinct key for the life of the process. The lock is held across fetch so
// concurrent renders of the same key cannot double-invoke the provider.
// Fetch errors are not cached; a failed season can be retried next render.
func (t *Table[V]) Do(key string, fetch func() (V, error)) (V, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.entries[key]; ok {
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		var zero V
		return zero, err
	}
	t.entries[key] = v
	return v, nil
}

// Refresh re-fetches key unconditionally and replaces the stored entry,
// keeping the old value when the fetch fails. Used by the refresh daemon so
// the current season does not go stale behind a no-eviction cache.
func (t *Table[V]) Refresh(key string, fetch func() (V, error)) (V, error) {
	v, err := fetch()
	if err != nil {
		var zero V
		return zero, err
	}
	t.mu.Lock()
	t.entries[key] = v
	t.mu.Unlock()
	return v, nil
}
