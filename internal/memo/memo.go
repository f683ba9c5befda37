// SPDX-License-Identifier: MPL-2.0

// Package memo remembers the last test selection per project.
//
// The cache lives for the process and is owned by the dispatch session, not
// held as package state, so independent sessions (and tests) never interfere.
// It is keyed by project identity rather than root path string: the identity
// is whatever the project resolver returned, taken as-is.
package memo

import "sync"

// SelectionCache maps project identities to the last chosen test target,
// stored relative to the action's resolved run directory. Safe for use from
// multiple goroutines; Remember and Recall are each atomic.
type SelectionCache[K comparable] struct {
	mu         sync.Mutex
	selections map[K]string
}

// NewSelectionCache creates an empty cache.
func NewSelectionCache[K comparable]() *SelectionCache[K] {
	return &SelectionCache[K]{selections: make(map[K]string)}
}

// Remember stores the selection for key, replacing any previous entry.
func (c *SelectionCache[K]) Remember(key K, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selections[key] = path
}

// Recall returns the stored selection for key. The boolean is false when the
// project has never completed a test prompt in this process; callers must
// surface that as an explicit condition rather than running an empty target.
func (c *SelectionCache[K]) Recall(key K) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	path, ok := c.selections[key]
	return path, ok
}
