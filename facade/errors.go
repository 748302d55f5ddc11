package facade

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrContainerNotSet is matched by *ConfigurationError.
	ErrContainerNotSet = errors.New("facade: container has not been set")

	// ErrUnresolvable is matched by *ResolutionError.
	ErrUnresolvable = errors.New("facade: accessor could not be resolved")

	// ErrTypeMismatch is matched by *TypeMismatchError.
	ErrTypeMismatch = errors.New("facade: unexpected root type")

	// ErrNoSuchMethod is matched by *NoSuchMethodError.
	ErrNoSuchMethod = errors.New("facade: no such method")

	// ErrBadArguments is matched by *ArgumentError.
	ErrBadArguments = errors.New("facade: bad call arguments")
)

// ConfigurationError is returned when a facade is resolved before any
// container was set and nothing was swapped in for its accessor.
//
//	// Laravel: RuntimeException('A facade root has not been set.')
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("facade: container has not been set (accessor %q)", e.Key)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrContainerNotSet }

// ResolutionError wraps the failure reported by the container for Key.
type ResolutionError struct {
	Key string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("facade: cannot resolve accessor %q: %v", e.Key, e.Err)
}

func (e *ResolutionError) Is(target error) bool { return target == ErrUnresolvable }

func (e *ResolutionError) Unwrap() error { return e.Err }

// TypeMismatchError is returned when the value behind Key is nil or is not
// of the type the facade was defined with.
type TypeMismatchError struct {
	Key  string
	Want string // empty when any non-nil value is acceptable
	Got  string
}

func (e *TypeMismatchError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("facade: the entry for %q must return an object, got %s", e.Key, e.Got)
	}
	return fmt.Sprintf("facade: the entry for %q must be %s, got %s", e.Key, e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// NoSuchMethodError is returned by Call when the resolved root has no
// exported method named Method.
type NoSuchMethodError struct {
	Method string
	Type   string
}

func (e *NoSuchMethodError) Error() string {
	return fmt.Sprintf("facade: method %q does not exist on %q", e.Method, e.Type)
}

func (e *NoSuchMethodError) Is(target error) bool { return target == ErrNoSuchMethod }

// ArgumentError is returned by Call when the arguments cannot be passed to
// the forwarded method.
type ArgumentError struct {
	Method string
	Type   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("facade: cannot call %q on %q: %s", e.Method, e.Type, e.Reason)
}

func (e *ArgumentError) Is(target error) bool { return target == ErrBadArguments }

// isNil reports whether v is nil or a nil pointer, map, slice, chan or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// typeName renders the dynamic type of v the way %T does, with "<nil>" for nil.
func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
