package facade

import (
	"fmt"
	"reflect"
)

// Call resolves the root and invokes its exported method with args,
// returning every result unchanged. A method that reports failure through a
// trailing error result still has that error returned in the slice, not as
// Call's own error.
//
//	// Laravel: Facade::__callStatic($method, $args)
//	out, err := Greeting.Call("Greet", "World") // out[0] == "Hello, World!"
func (f *Facade[T]) Call(method string, args ...any) ([]any, error) {
	inst, err := f.registry.Resolve(f.key)
	if err != nil {
		return nil, err
	}
	return invoke(inst, method, args)
}

// CallAs forwards method like Call and returns its single result as R.
// Methods shaped (R, error) are accepted too; their error is returned as is.
func CallAs[R, T any](f *Facade[T], method string, args ...any) (R, error) {
	var zero R
	out, err := f.Call(method, args...)
	if err != nil {
		return zero, err
	}

	mismatch := &TypeMismatchError{
		Key:  f.key,
		Want: reflect.TypeOf((*R)(nil)).Elem().String(),
		Got:  fmt.Sprintf("%d results from %s", len(out), method),
	}
	switch len(out) {
	case 1:
	case 2:
		if out[1] != nil {
			e, ok := out[1].(error)
			if !ok {
				return zero, mismatch
			}
			return zero, e
		}
	default:
		return zero, mismatch
	}

	if out[0] == nil {
		return zero, nil
	}
	v, ok := out[0].(R)
	if !ok {
		return zero, &TypeMismatchError{Key: f.key, Want: reflect.TypeOf((*R)(nil)).Elem().String(), Got: typeName(out[0])}
	}
	return v, nil
}

func invoke(inst any, method string, args []any) ([]any, error) {
	rv := reflect.ValueOf(inst)
	m := rv.MethodByName(method)
	if !m.IsValid() {
		return nil, &NoSuchMethodError{Method: method, Type: typeName(inst)}
	}

	in, err := callArgs(m.Type(), args)
	if err != nil {
		return nil, &ArgumentError{Method: method, Type: typeName(inst), Reason: err.Error()}
	}

	res := m.Call(in)
	out := make([]any, len(res))
	for i, v := range res {
		out[i] = v.Interface()
	}
	return out, nil
}

// callArgs converts args to reflect values accepted by a function of type
// ft. Untyped nil becomes the zero value of a nillable parameter.
func callArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("want at least %d arguments, got %d", n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("want %d arguments, got %d", n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := paramType(ft, i)
		v, err := argValue(arg, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

func paramType(ft reflect.Type, i int) reflect.Type {
	last := ft.NumIn() - 1
	if ft.IsVariadic() && i >= last {
		return ft.In(last).Elem()
	}
	return ft.In(i)
}

func argValue(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", pt)
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), pt)
	}
	return v, nil
}
