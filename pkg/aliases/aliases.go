// Package aliases maps friendly model names to concrete model identifiers.
package aliases

import (
	"maps"
	"sync"
)

// Resolver resolves model-name aliases. The zero value resolves every name to
// itself.
type Resolver struct {
	table map[string]string
}

// NewResolver creates a resolver over a copy of the given table.
func NewResolver(table map[string]string) *Resolver {
	r := &Resolver{table: make(map[string]string, len(table))}
	maps.Copy(r.table, table)
	return r
}

// Resolve returns the aliased model name, or the input unchanged when no
// alias exists. Resolution is a single lookup; aliases do not chain.
func (r *Resolver) Resolve(name string) string {
	if r == nil || r.table == nil {
		return name
	}
	if resolved, ok := r.table[name]; ok && resolved != "" {
		return resolved
	}
	return name
}

// Merged returns a new resolver with overrides layered on top of this
// resolver's table. Neither input is mutated.
func (r *Resolver) Merged(overrides map[string]string) *Resolver {
	merged := make(map[string]string)
	if r != nil {
		maps.Copy(merged, r.table)
	}
	maps.Copy(merged, overrides)
	return &Resolver{table: merged}
}

// Table returns a copy of the resolver's alias table.
func (r *Resolver) Table() map[string]string {
	out := make(map[string]string)
	if r != nil {
		maps.Copy(out, r.table)
	}
	return out
}

var (
	globalMu sync.RWMutex
	global   = NewResolver(nil)
)

// SetGlobal installs the process-wide alias table, usually at startup from
// config.
func SetGlobal(table map[string]string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = NewResolver(table)
}

// Global returns the process-wide resolver.
func Global() *Resolver {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}
