package facade

import (
	"fmt"
	"reflect"
)

// Accessor is implemented by every facade: it names the container key of
// the root it stands for.
//
//	// Laravel: protected static function getFacadeAccessor() { return 'cache'; }
type Accessor interface {
	FacadeAccessor() string
}

// Option configures a facade at Define time.
type Option func(*options)

type options struct {
	registry *Registry
}

// WithRegistry binds the facade to r instead of the default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// Facade is a static-style handle to the root bound under its accessor key.
// Facades are meant to be package-level variables:
//
//	var Cache = facade.Define[*cache.Repository]("cache")
//
//	v, err := Cache.Root()           // typed
//	out, err := Cache.Call("Get", k) // dynamic
type Facade[T any] struct {
	key      string
	registry *Registry
}

// Define returns the facade for key. It panics on an empty key since a
// facade without an accessor can never resolve.
func Define[T any](key string, opts ...Option) *Facade[T] {
	if key == "" {
		panic("facade: Define called with an empty accessor key")
	}
	o := options{registry: defaultRegistry}
	for _, opt := range opts {
		opt(&o)
	}
	return &Facade[T]{key: key, registry: o.registry}
}

// FacadeAccessor returns the key the facade resolves.
func (f *Facade[T]) FacadeAccessor() string { return f.key }

// Registry returns the registry the facade reads from.
func (f *Facade[T]) Registry() *Registry { return f.registry }

// Root returns the instance behind the facade.
//
//	// Laravel: Facade::getFacadeRoot()
func (f *Facade[T]) Root() (T, error) {
	var zero T
	inst, err := f.registry.Resolve(f.key)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, &TypeMismatchError{Key: f.key, Want: reflect.TypeOf((*T)(nil)).Elem().String(), Got: typeName(inst)}
	}
	return typed, nil
}

// MustRoot is like Root but panics on error. Use it where a missing root is
// a bootstrap bug, not a runtime condition.
func (f *Facade[T]) MustRoot() T {
	v, err := f.Root()
	if err != nil {
		panic(err)
	}
	return v
}

// Swap replaces the root with instance until Clear or Forget and returns it
// so tests can keep configuring the double. It panics if instance is nil.
//
//	fake := greeting.Facade.Swap(&fakeGreeter{})
func (f *Facade[T]) Swap(instance T) T {
	if err := f.registry.Swap(f.key, instance); err != nil {
		panic(err)
	}
	return instance
}

// Forget drops the cached and swapped roots of this facade only.
func (f *Facade[T]) Forget() { f.registry.Forget(f.key) }

// MockableType returns the concrete runtime type of the root, which is the
// type a hand-written or generated test double has to stand in for.
func (f *Facade[T]) MockableType() (reflect.Type, error) {
	inst, err := f.registry.Resolve(f.key)
	if err != nil {
		return nil, err
	}
	return reflect.TypeOf(inst), nil
}

func (f *Facade[T]) String() string {
	return fmt.Sprintf("facade(%s)", f.key)
}
