package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/km-arc/go-facade/facade"
	"github.com/km-arc/go-facade/framework/config"
	"github.com/km-arc/go-facade/framework/container"
	gohttp "github.com/km-arc/go-facade/framework/http"
	"github.com/km-arc/go-facade/framework/providers"
	"github.com/km-arc/go-facade/framework/routing"
)

// ShutdownTimeout bounds how long Serve waits for in-flight requests once its
// context is cancelled.
const ShutdownTimeout = 5 * time.Second

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly,
// like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
	Facades   *facade.Registry
}

type options struct {
	config     *config.Config
	envFiles   []string
	configFile string
	logOutput  io.Writer
	registry   *facade.Registry
}

// Option configures New.
type Option func(*options)

// WithConfig binds cfg instead of loading one.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithEnvFiles replaces the default ".env" lookup.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// WithConfigFile reads a YAML config file under the environment.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithLogOutput sends application logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithFacadeRegistry points the application at reg instead of the process-wide
// facade registry.
func WithFacadeRegistry(reg *facade.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// New creates the application and registers the framework core providers.
// Nothing is resolved until Boot.
func New(opts ...Option) *Application {
	o := options{registry: facade.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	c := container.New()
	registry := container.NewProviderRegistry(c)

	a := &Application{
		Container: c,
		Providers: registry,
		Facades:   o.registry,
	}
	c.Instance("app", a)

	// Same order as Laravel: config, log, routing, then facades.
	registry.Register(&providers.ConfigServiceProvider{
		Config:   o.config,
		EnvFiles: o.envFiles,
		File:     o.configFile,
	})
	registry.Register(&providers.LoggingServiceProvider{Output: o.logOutput})
	registry.Register(&providers.RoutingServiceProvider{})
	registry.Register(&providers.FacadeServiceProvider{Registry: o.registry})

	return a
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers and mounts /health. Calling it
// again is a no-op.
func (a *Application) Boot() {
	if a.Providers.Booted() {
		return
	}
	a.Providers.Boot()
	a.Router().Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).Success(map[string]string{"status": "ok"})
	})
	a.Logger().Debug("application booted", "providers", len(a.Providers.Providers()))
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Logger resolves the application *slog.Logger.
func (a *Application) Logger() *slog.Logger {
	return container.Resolve[*slog.Logger](a.Container, "log")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Handler boots the application if needed and returns its HTTP handler.
func (a *Application) Handler() http.Handler {
	a.Boot()
	return a.Router().Handler()
}

// Run listens on APP_PORT and serves until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	a.Boot()
	addr := ":" + a.Config().App.Port

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// It returns nil after a clean shutdown.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	handler := a.Handler()
	cfg := a.Config()
	logger := a.Logger()

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	logger.Info("server started",
		"name", cfg.App.Name, "addr", ln.Addr().String(), "env", cfg.App.Env)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
