// Package container provides a Laravel-compatible IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container manages the instantiation and lifecycle of your application's
// dependencies: transient bindings, singletons, pre-built instances, aliases
// and decoration through Extend. Because Go has no runtime constructor
// reflection, auto-wiring is replaced by explicit factory functions.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()        — safe to resolve everything after this
//  4. Hand it to the facades: facade.SetContainer(c)
//
// # Bindings
//
//	// Transient — new instance every Make()
//	c.Bind("Foo", func(c *container.Container) any { return &Foo{} })
//
//	// Singleton — created once, reused
//	c.Singleton("greeting", func(c *container.Container) any {
//	    return greeting.NewService("Hello, %s!")
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alias
//	c.Alias("config", "configuration")
//
// # Resolving
//
//	raw := c.Make("greeting")                      // panics when unbound
//	raw, err := c.Get("greeting")                  // error when unbound
//	svc := container.Resolve[*greeting.Service](c, "greeting")
//	svc, err := container.TryResolve[*greeting.Service](c, "greeting")
//
// Has and Get make *Container a facade.Container; Rebinding makes it a
// facade.Rebinder, so re-binding a key drops the root cached by its facade.
//
// # Extend / Decorate
//
//	c.Extend("logger", func(instance any, c *container.Container) any {
//	    return &TimestampLogger{Inner: instance.(*Logger)}
//	})
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) { ... }
//	func (p *AppServiceProvider) Boot(app *container.Container)     { ... }
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// # Deferred Providers
//
//	func (p *HeavyProvider) IsDeferred() bool   { return true }
//	func (p *HeavyProvider) Provides() []string { return []string{"heavy"} }
//
// Register of a deferred provider runs on the first Make of any abstract it
// provides.
package container
