// Package scope implements the reducer's lexical scope chain: a root
// scope wrapping the host's read-only VariableMap, and child scopes each
// owning a mutable local map. Lookup walks child->parent; writes always
// affect the innermost scope only (unlike the teacher's Environment.Set,
// which walks up to find where a name was declared).
package scope

import (
	"sync"

	"github.com/cwbudde/funcity/internal/value"
)

// Scope is one lexical scope in the reducer's chain. Siblings in a list or
// an apply's argument list may be reduced as a joined set of goroutines, so
// a scope's local map needs its own lock (mirroring the method registry's
// sync.RWMutex over mutable shared state).
type Scope struct {
	parent *Scope
	root   *value.VariableMap // only set on the root scope
	mu     sync.RWMutex
	local  map[string]value.Value
}

// NewRoot returns the root scope, wrapping vars read-only.
func NewRoot(vars *value.VariableMap) *Scope {
	if vars == nil {
		vars = value.NewVariableMap()
	}
	return &Scope{root: vars}
}

// NewChild returns a child scope referring to s as parent.
func (s *Scope) NewChild() *Scope {
	return &Scope{parent: s, local: make(map[string]value.Value)}
}

// Lookup walks local -> parent -> ... -> root's VariableMap.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.root != nil {
			return cur.root.Get(name)
		}
		cur.mu.RLock()
		v, ok := cur.local[name]
		cur.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Write sets name in the innermost (local) scope only. Calling Write on
// the root scope is a no-op: the host's VariableMap is read-only from the
// reducer's perspective (see the scope-isolation invariant).
func (s *Scope) Write(name string, v value.Value) {
	if s.local == nil {
		return
	}
	s.mu.Lock()
	s.local[name] = v
	s.mu.Unlock()
}

// IsRoot reports whether s is the root scope wrapping the host map.
func (s *Scope) IsRoot() bool {
	return s.root != nil
}
