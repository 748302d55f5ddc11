// Package facadetest swaps facade roots for the duration of a test.
//
//	func TestHello(t *testing.T) {
//	    m := facadetest.SwapMock(t, greeting.Facade, &greeterMock{})
//	    m.On("Greet", "world").Return("Hi, world")
//	    ...
//	}
//
// Every helper registers a cleanup that forgets the swapped root, so tests do
// not leak doubles into each other.
package facadetest

import (
	"github.com/stretchr/testify/mock"

	"github.com/km-arc/go-facade/facade"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
	FailNow()
	Cleanup(f func())
}

// expecter is implemented by testify mocks (anything embedding mock.Mock).
type expecter interface {
	AssertExpectations(t mock.TestingT) bool
}

// Swap installs instance as the root of f and forgets it when the test ends.
func Swap[T any](tb TB, f *facade.Facade[T], instance T) T {
	tb.Helper()

	if err := f.Registry().Swap(f.FacadeAccessor(), instance); err != nil {
		tb.Fatalf("facadetest: swap %s: %v", f, err)
	}
	tb.Cleanup(f.Forget)
	return instance
}

// SwapMock swaps m in as the root of f. If m is a testify mock its
// expectations are asserted when the test ends, before the root is forgotten.
//
//	// Laravel: Greeting::shouldReceive('greet')->andReturn('Hi')
func SwapMock[T any, M any](tb TB, f *facade.Facade[T], m M) M {
	tb.Helper()

	root, ok := any(m).(T)
	if !ok {
		tb.Fatalf("facadetest: %T does not implement the root type of %s", m, f)
		return m
	}
	Swap(tb, f, root)

	if e, ok := any(m).(expecter); ok {
		tb.Cleanup(func() { e.AssertExpectations(tb) })
	}
	return m
}

// Isolate returns a fresh registry installed with c (which may be nil) that
// is cleared when the test ends. Bind facades to it with facade.WithRegistry.
func Isolate(tb TB, c facade.Container) *facade.Registry {
	tb.Helper()

	reg := facade.NewRegistry()
	if c != nil {
		reg.SetContainer(c)
	}
	tb.Cleanup(reg.Clear)
	return reg
}

// UseContainer installs c on the default registry for the duration of the
// test and clears it afterwards.
func UseContainer(tb TB, c facade.Container) {
	tb.Helper()

	facade.SetContainer(c)
	tb.Cleanup(facade.Clear)
}
