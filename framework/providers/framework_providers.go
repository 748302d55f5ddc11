package providers

import (
	"io"
	"log/slog"
	"os"

	"github.com/km-arc/go-facade/facade"
	"github.com/km-arc/go-facade/framework/config"
	"github.com/km-arc/go-facade/framework/container"
	"github.com/km-arc/go-facade/framework/logging"
	"github.com/km-arc/go-facade/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the configuration and binds it as "config".
//
// Bound abstracts:
//   - "config" → *config.Config (alias "configuration")
//
// A preloaded Config is bound as is. Otherwise, when File is set it is read
// as YAML under the environment, see config.LoadFile. A broken file panics at
// first resolution, which Get reports as container.ErrFactoryPanic.
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config
	EnvFiles []string
	File     string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	if p.Config != nil {
		app.Instance("config", p.Config)
		app.Alias("config", "configuration")
		return
	}
	envFiles, file := p.EnvFiles, p.File
	app.Singleton("config", func(*container.Container) any {
		if file == "" {
			return config.Load(envFiles...)
		}
		cfg, err := config.LoadFile(file, envFiles...)
		if err != nil {
			panic(err)
		}
		return cfg
	})
	app.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound abstracts:
//   - "log" → *slog.Logger built from config.Log
type LoggingServiceProvider struct {
	container.BaseProvider
	Output io.Writer // default: os.Stderr
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	out := p.Output
	if out == nil {
		out = os.Stderr
	}
	app.Singleton("log", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return logging.New(cfg.Log, out)
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router" → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New(container.Resolve[*slog.Logger](c, "log"))
	})
}

// ── FacadeServiceProvider ─────────────────────────────────────────────────────

// FacadeServiceProvider points the facades at the application container once
// every provider has registered.
//
//	// Laravel: Illuminate\Foundation\Bootstrap\RegisterFacades
//	//   Facade::clearResolvedInstances(); Facade::setFacadeApplication($app);
type FacadeServiceProvider struct {
	container.BaseProvider
	Registry *facade.Registry // default: facade.Default()
}

func (p *FacadeServiceProvider) Register(*container.Container) {}

func (p *FacadeServiceProvider) Boot(app *container.Container) {
	reg := p.Registry
	if reg == nil {
		reg = facade.Default()
	}
	reg.SetContainer(app)

	if logger, err := container.TryResolve[*slog.Logger](app, "log"); err == nil {
		logger.Debug("facades: container set", "bindings", len(app.Bindings()))
	}
}
