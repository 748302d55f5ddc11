package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Register binds services; Boot runs after every provider is registered and
// may resolve anything.
//
//	type GreetingProvider struct{ container.BaseProvider }
//
//	func (p *GreetingProvider) Register(app *container.Container) {
//	    app.Singleton(greeting.Key, func(c *container.Container) any {
//	        return greeting.NewService(container.Resolve[*config.Config](c, "config").Greeting.Format)
//	    })
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here — use Boot() for that.
	Register(app *Container)

	// Boot is called after all providers are registered.
	Boot(app *Container)

	// Provides lists the abstracts a deferred provider registers.
	//
	//	// Laravel: public function provides(): array { return [Cache::class]; }
	Provides() []string

	// IsDeferred returns true if the provider should only be registered when
	// one of its Provides() abstracts is first resolved.
	IsDeferred() bool
}

// BaseProvider is an embeddable no-op implementation of everything except
// Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders, including deferred
// ones. It mirrors Laravel's Application::registerConfiguredProviders and
// Application::bootProviders.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // abstract → provider
	loaded     map[ServiceProvider]bool
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		loaded:     make(map[ServiceProvider]bool),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers are registered immediately (and
// booted too if the registry already booted); deferred ones wait for their
// first Make.
//
//	// Laravel: $app->register(new AppServiceProvider($app))
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
			r.app.Bind(abstract, r.lazy(abstract, provider))
		}
		return
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)
	if r.booted {
		provider.Boot(r.app)
	}
}

// lazy returns a placeholder factory that loads provider on first use and
// then resolves abstract from the real binding it registered.
func (r *ProviderRegistry) lazy(abstract string, provider ServiceProvider) Factory {
	return func(c *Container) any {
		if !r.loaded[provider] {
			r.loaded[provider] = true
			for _, abs := range provider.Provides() {
				delete(r.deferred, abs)
			}
			provider.Register(c)
			if r.booted {
				provider.Boot(c)
			}
		}
		return c.Make(abstract)
	}
}

// Boot calls Boot() on all eager providers once.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }

// Deferred returns the abstracts still waiting on a deferred provider.
func (r *ProviderRegistry) Deferred() []string {
	out := make([]string, 0, len(r.deferred))
	for abs := range r.deferred {
		out = append(out, abs)
	}
	return out
}
