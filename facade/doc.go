// Package facade provides Laravel-style facades: package-level handles that
// forward to a service resolved lazily from a container.
//
// # Defining a facade
//
//	// Laravel:
//	// class Greeting extends Facade {
//	//     protected static function getFacadeAccessor() { return GreetingService::class; }
//	// }
//	var Greeting = facade.Define[*GreetingService]("greeting")
//
// # Bootstrapping
//
// Any value with Has(key) bool and Get(key) (any, error) is a Container.
//
//	c := container.New()
//	c.Singleton("greeting", func(*container.Container) any { return &GreetingService{} })
//	facade.SetContainer(c)
//
// SetContainer clears every cached root before installing the container.
//
// # Calling through a facade
//
//	svc, err := Greeting.Root()                      // typed, preferred
//	msg := Greeting.MustRoot().Greet("World")        // bootstrap-safe code
//	out, err := Greeting.Call("Greet", "World")      // dynamic, like __callStatic
//	msg, err := facade.CallAs[string](Greeting, "Greet", "World")
//
// # Resolution order
//
//  1. a root installed with Swap
//  2. a root cached by an earlier resolution
//  3. a fresh Get from the container, cached until Clear, SetContainer,
//     Forget, or until the container re-binds the key (see Rebinder)
//
// # Testing
//
//	fake := Greeting.Swap(&GreetingService{Format: "Hi %s"})
//	defer Greeting.Forget()
//
// See package facadetest for helpers that register the cleanup for you.
//
// # Errors
//
// Failures are returned, never retried:
//
//   - *ConfigurationError (ErrContainerNotSet): nothing swapped and no container
//   - *ResolutionError (ErrUnresolvable): the container failed, cause wrapped
//   - *TypeMismatchError (ErrTypeMismatch): nil root or root of the wrong type
//   - *NoSuchMethodError (ErrNoSuchMethod): Call named a missing method
//   - *ArgumentError (ErrBadArguments): Call arguments do not fit the method
package facade
