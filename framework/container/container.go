package container

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"
)

var (
	// ErrNotBound is returned by Get when nothing is registered for a key.
	ErrNotBound = errors.New("container: no binding registered")

	// ErrFactoryPanic is returned by Get when a factory panics.
	ErrFactoryPanic = errors.New("container: factory panicked")
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// Extender wraps an already-resolved instance with decorator logic.
type Extender func(instance any, c *Container) any

type binding struct {
	factory   Factory
	singleton bool
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container — mirrors Laravel's Illuminate\Container\Container.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / Get / Resolve (generic)
//   - Extend (decorate resolved instances)
//   - Rebinding and AfterResolving callbacks
//
// Container satisfies facade.Container and facade.Rebinder, so it can be
// handed straight to facade.SetContainer.
type Container struct {
	mu sync.RWMutex

	bindings  map[string]*binding
	instances map[string]any
	resolved  map[string]bool // every abstract built or handed out at least once
	aliases   map[string]string
	extenders map[string][]Extender

	reboundCallbacks map[string][]func(any)
	afterResolving   []func(string, any)

	logger *slog.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for debug output about bindings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) { c.logger = logger }
}

// New creates an empty container bound to itself under "container".
func New(opts ...Option) *Container {
	c := &Container{
		bindings:         make(map[string]*binding),
		instances:        make(map[string]any),
		resolved:         make(map[string]bool),
		aliases:          make(map[string]string),
		extenders:        make(map[string][]Extender),
		reboundCallbacks: make(map[string][]func(any)),
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// Laravel: $app->instance('app', $app)
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient (new instance each Make) factory.
//
//	// Laravel: $app->bind(UserRepository::class, fn($app) => new EloquentUserRepository($app))
//	c.Bind("UserRepository", func(c *container.Container) any {
//	    return &EloquentUserRepository{}
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.register(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	// Laravel: $app->singleton(GreetingService::class, fn() => new GreetingService)
//	c.Singleton("greeting", func(c *container.Container) any {
//	    return greeting.NewService(container.Resolve[*config.Config](c, "config"))
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.register(abstract, factory, true)
}

// register replaces any previous binding. When the abstract had already been
// resolved, transient or not, rebound callbacks receive a freshly built
// instance.
//
//	// Laravel: if ($this->resolved($abstract)) { $this->rebound($abstract); }
func (c *Container) register(abstract string, factory Factory, singleton bool) {
	c.mu.Lock()
	key := c.canonical(abstract)
	_, hasInstance := c.instances[key]
	wasResolved := hasInstance || c.resolved[key]
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
	hasCallbacks := len(c.reboundCallbacks[key]) > 0
	c.mu.Unlock()

	c.logger.Debug("container: bound", "abstract", key, "singleton", singleton)

	if wasResolved && hasCallbacks {
		if inst, err := c.Get(key); err == nil {
			c.fireRebound(key, inst)
		}
	}
}

// Instance registers a pre-built value as a singleton.
//
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance("config", myConfig)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	key := c.canonical(abstract)
	_, existed := c.instances[key]
	_, wasBound := c.bindings[key]
	delete(c.bindings, key)
	c.instances[key] = instance
	c.mu.Unlock()

	if existed || wasBound {
		c.fireRebound(key, instance)
	}
}

// Alias registers an alternative name for an abstract.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
//	c.Alias("cache", "cacheManager")
func (c *Container) Alias(abstract, alias string) {
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
}

// Extend decorates the resolved instance of an abstract. An already resolved
// singleton is decorated immediately and rebound callbacks fire.
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
func (c *Container) Extend(abstract string, fn Extender) {
	c.mu.Lock()
	key := c.canonical(abstract)
	c.extenders[key] = append(c.extenders[key], fn)
	inst, resolved := c.instances[key]
	c.mu.Unlock()

	if !resolved {
		return
	}
	extended := fn(inst, c)
	c.mu.Lock()
	c.instances[key] = extended
	c.mu.Unlock()
	c.fireRebound(key, extended)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract from the container and panics when it cannot,
// like Laravel's BindingResolutionException. Prefer Get outside bootstrap code.
//
//	// Laravel: $app->make(UserRepository::class)
//	repo := c.Make("UserRepository")
func (c *Container) Make(abstract string) any {
	inst, err := c.Get(abstract)
	if err != nil {
		panic(err)
	}
	return inst
}

// Get resolves abstract, returning ErrNotBound when nothing is registered
// and ErrFactoryPanic when its factory panics.
func (c *Container) Get(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	inst, hasInstance := c.instances[key]
	seen := c.resolved[key]
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if hasInstance {
		if !seen {
			c.markResolved(key)
		}
		return inst, nil
	}
	if !ok {
		return nil, fmt.Errorf("%w for [%s]", ErrNotBound, abstract)
	}
	return c.build(key, b)
}

// Has reports whether abstract is bound or already has an instance.
//
//	// Laravel: $app->bound(UserRepository::class)
func (c *Container) Has(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the abstract has been resolved at least once
// since it was last forgotten, transient bindings included.
//
//	// Laravel: $app->resolved(Cache::class)
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, ok := c.instances[key]
	return ok || c.resolved[key]
}

func (c *Container) markResolved(key string) {
	c.mu.Lock()
	c.resolved[key] = true
	c.mu.Unlock()
}

// build runs the factory outside the lock so factories may resolve other
// abstracts. Concurrent first builds of a singleton keep the first stored.
func (c *Container) build(key string, b *binding) (inst any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			inst = nil
			err = fmt.Errorf("%w: [%s]: %v", ErrFactoryPanic, key, rec)
		}
	}()

	inst = b.factory(c)

	c.mu.RLock()
	exts := c.extenders[key]
	c.mu.RUnlock()
	for _, ext := range exts {
		inst = ext(inst, c)
	}

	c.mu.Lock()
	c.resolved[key] = true
	if b.singleton {
		if cur, ok := c.instances[key]; ok {
			c.mu.Unlock()
			return cur, nil
		}
		c.instances[key] = inst
	}
	c.mu.Unlock()

	c.fireAfterResolving(key, inst)
	return inst, nil
}

// ── Housekeeping ──────────────────────────────────────────────────────────────

// Forget removes all registrations for an abstract (binding + instance).
//
//	// Laravel: $app->forgetInstance(Cache::class)
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
	delete(c.resolved, key)
}

// Flush resets the entire container, callbacks included.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]*binding)
	c.instances = make(map[string]any)
	c.resolved = make(map[string]bool)
	c.aliases = make(map[string]string)
	c.extenders = make(map[string][]Extender)
	c.reboundCallbacks = make(map[string][]func(any))
	c.afterResolving = nil
}

// Bindings returns every registered abstract key, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, dup := c.bindings[k]; !dup {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// canonical must hold mu (read or write).
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// Rebinding registers a callback called whenever abstract is bound again
// after it was resolved.
//
//	// Laravel: $app->rebinding(UserRepository::class, fn($app, $repo) => ...)
func (c *Container) Rebinding(abstract string, cb func(any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	c.reboundCallbacks[key] = append(c.reboundCallbacks[key], cb)
}

// AfterResolving registers a callback fired after any factory-built abstract
// is resolved.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireRebound(key string, instance any) {
	c.mu.RLock()
	cbs := append([]func(any){}, c.reboundCallbacks[key]...)
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(instance)
	}
}

func (c *Container) fireAfterResolving(key string, instance any) {
	c.mu.RLock()
	cbs := append([]func(string, any){}, c.afterResolving...)
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(key, instance)
	}
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// abstract key.
//
//	key := container.TypeKey((*greeting.Service)(nil))  // ".../app/greeting.Service"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// Resolve calls Make and type-asserts the result, panicking on mismatch.
//
//	// Instead of: cfg := c.Make("config").(*config.Config)
//	// Write:      cfg := container.Resolve[*config.Config](c, "config")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// TryResolve is like Resolve but reports failure instead of panicking.
func TryResolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Get(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T, not %s", abstract, instance, reflect.TypeOf((*T)(nil)).Elem())
	}
	return typed, nil
}
