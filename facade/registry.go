package facade

import (
	"sort"
	"sync"
)

// Container is the lookup contract a facade needs from a service container.
// It mirrors PSR-11: Has reports whether key is bound, Get builds or returns
// the value bound to key.
type Container interface {
	Has(key string) bool
	Get(key string) (any, error)
}

// Rebinder is implemented by containers that can report when a key is bound
// again after it was resolved. The registry uses it to drop stale roots.
type Rebinder interface {
	Rebinding(key string, cb func(instance any))
}

// Source tells where a cached root came from.
type Source string

const (
	SourceResolved Source = "resolved"
	SourceSwapped  Source = "swapped"
)

// Entry describes one cached root.
type Entry struct {
	Key    string
	Source Source
	Type   string
}

// Registry holds the container and the resolved / swapped roots shared by
// every facade bound to it.
//
// Swapped roots win over resolved ones. Resolved roots stay cached until
// Clear, SetContainer, Forget, or the container re-binds their key.
type Registry struct {
	mu        sync.RWMutex
	container Container
	resolved  map[string]any
	swapped   map[string]any

	// epoch is bumped on every Clear so late rebinding callbacks and
	// in-flight resolutions from a previous container are ignored. gens does
	// the same per key for Forget and rebinds.
	epoch   uint64
	gens    map[string]uint64
	watched map[string]bool

	// watchMu serializes Rebinding registration so a key is only marked
	// watched once its callback is in place.
	watchMu sync.Mutex
}

// NewRegistry returns an empty registry with no container.
func NewRegistry() *Registry {
	return &Registry{
		resolved: make(map[string]any),
		swapped:  make(map[string]any),
		gens:     make(map[string]uint64),
		watched:  make(map[string]bool),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by facades defined without
// WithRegistry and by the package-level SetContainer, GetContainer and Clear.
func Default() *Registry { return defaultRegistry }

// SetContainer clears the default registry and installs c.
//
//	// Laravel: Facade::setFacadeApplication($app)
func SetContainer(c Container) { defaultRegistry.SetContainer(c) }

// GetContainer returns the container of the default registry, nil if unset.
func GetContainer() Container { return defaultRegistry.Container() }

// Clear forgets every resolved and swapped root of every facade bound to the
// default registry and unsets its container.
//
//	// Laravel: Facade::clearResolvedInstances()
func Clear() { defaultRegistry.Clear() }

// ── Container ─────────────────────────────────────────────────────────────────

// SetContainer clears the registry, then installs c.
func (r *Registry) SetContainer(c Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
	r.container = c
}

// Container returns the active container, nil if unset.
func (r *Registry) Container() Container {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.container
}

// Clear drops every resolved and swapped root and unsets the container.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
}

// reset must hold mu.Lock.
func (r *Registry) reset() {
	r.container = nil
	r.resolved = make(map[string]any)
	r.swapped = make(map[string]any)
	r.gens = make(map[string]uint64)
	r.watched = make(map[string]bool)
	r.epoch++
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the root behind key: the swapped instance if any, then the
// cached one, then a fresh lookup in the container which is cached on success.
func (r *Registry) Resolve(key string) (any, error) {
	r.mu.RLock()
	if inst, ok := r.swapped[key]; ok {
		r.mu.RUnlock()
		return inst, nil
	}
	if inst, ok := r.resolved[key]; ok {
		r.mu.RUnlock()
		return inst, nil
	}
	c, epoch, gen := r.container, r.epoch, r.gens[key]
	r.mu.RUnlock()

	if c == nil {
		return nil, &ConfigurationError{Key: key}
	}

	// Watch before the lookup: a rebind landing after this point bumps the
	// key's generation and keeps the instance below out of the cache.
	r.watch(c, key, epoch)

	// The container is called without holding mu: factories may resolve
	// other facades.
	inst, err := c.Get(key)
	if err != nil {
		return nil, &ResolutionError{Key: key, Err: err}
	}
	if isNil(inst) {
		return nil, &TypeMismatchError{Key: key, Got: typeName(inst)}
	}

	r.mu.Lock()
	if r.epoch != epoch || r.gens[key] != gen {
		// Cleared, forgotten or rebound while we were resolving; hand back
		// the instance uncached.
		r.mu.Unlock()
		return inst, nil
	}
	if cur, ok := r.swapped[key]; ok {
		r.mu.Unlock()
		return cur, nil
	}
	if cur, ok := r.resolved[key]; ok {
		r.mu.Unlock()
		return cur, nil
	}
	r.resolved[key] = inst
	r.mu.Unlock()
	return inst, nil
}

// watch registers a rebinding callback for key once per epoch when c
// supports it. The registry lock is not held while calling into c.
func (r *Registry) watch(c Container, key string, epoch uint64) {
	rb, ok := c.(Rebinder)
	if !ok {
		return
	}
	r.watchMu.Lock()
	defer r.watchMu.Unlock()

	r.mu.RLock()
	skip := r.epoch != epoch || r.watched[key]
	r.mu.RUnlock()
	if skip {
		return
	}

	rb.Rebinding(key, func(any) { r.forgetResolved(key, epoch) })

	r.mu.Lock()
	if r.epoch == epoch {
		r.watched[key] = true
	}
	r.mu.Unlock()
}

// forgetResolved drops the cached root for key if the registry is still on
// the epoch the callback was registered in. Swapped roots are kept.
func (r *Registry) forgetResolved(key string, epoch uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.epoch == epoch {
		delete(r.resolved, key)
		r.gens[key]++
	}
}

// ── Swap / Forget ─────────────────────────────────────────────────────────────

// Swap installs instance as the root for key, bypassing the container until
// Clear or Forget. A nil instance is rejected.
//
//	// Laravel: Cache::swap($fake)
func (r *Registry) Swap(key string, instance any) error {
	if isNil(instance) {
		return &TypeMismatchError{Key: key, Got: typeName(instance)}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.swapped[key] = instance
	return nil
}

// Forget drops the resolved and swapped roots for key only. Lookups of key
// still in flight are not cached, and the next lookup registers a fresh
// rebinding callback in case the container dropped the old one (Flush).
//
//	// Laravel: Facade::clearResolvedInstance($name)
func (r *Registry) Forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resolved, key)
	delete(r.swapped, key)
	delete(r.watched, key)
	r.gens[key]++
}

// Entries returns a snapshot of every cached root, sorted by key. A key that
// is both resolved and swapped is reported once, as swapped.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.resolved)+len(r.swapped))
	for k, v := range r.swapped {
		out = append(out, Entry{Key: k, Source: SourceSwapped, Type: typeName(v)})
	}
	for k, v := range r.resolved {
		if _, shadowed := r.swapped[k]; shadowed {
			continue
		}
		out = append(out, Entry{Key: k, Source: SourceResolved, Type: typeName(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
