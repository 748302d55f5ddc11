package greeting

import "github.com/km-arc/go-facade/facade"

// Greeter is what callers of the facade rely on.
type Greeter interface {
	Greet(name string) string
}

// Facade resolves the greeting service from the container set with
// facade.SetContainer.
//
//	msg := greeting.Facade.MustRoot().Greet("world") // "Hello, World!"
var Facade = facade.Define[Greeter](Key)
