package providers_test

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-facade/facade"
	"github.com/km-arc/go-facade/framework/config"
	"github.com/km-arc/go-facade/framework/container"
	"github.com/km-arc/go-facade/framework/providers"
	"github.com/km-arc/go-facade/framework/routing"
)

func boot(t *testing.T, ps ...container.ServiceProvider) *container.Container {
	t.Helper()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	for _, p := range ps {
		reg.Register(p)
	}
	reg.Boot()
	return c
}

func TestConfigServiceProvider(t *testing.T) {
	t.Setenv("APP_NAME", "ProviderTest")
	c := boot(t, &providers.ConfigServiceProvider{EnvFiles: []string{"testdata/missing.env"}})

	cfg := container.Resolve[*config.Config](c, "config")
	assert.Equal(t, "ProviderTest", cfg.App.Name)
	assert.Same(t, cfg, c.Make("configuration"))
}

func TestConfigServiceProvider_File(t *testing.T) {
	_ = os.Unsetenv("GREETING_FORMAT")
	path := t.TempDir() + "/app.yaml"
	require.NoError(t, os.WriteFile(path, []byte("greeting:\n  format: \"Hey %s\"\n"), 0o600))

	c := boot(t, &providers.ConfigServiceProvider{File: path, EnvFiles: []string{"testdata/missing.env"}})

	cfg := container.Resolve[*config.Config](c, "config")
	assert.Equal(t, "Hey %s", cfg.Greeting.Format)
}

func TestConfigServiceProvider_BadFile(t *testing.T) {
	c := boot(t, &providers.ConfigServiceProvider{File: "testdata/does-not-exist.yaml"})

	_, err := c.Get("config")
	assert.ErrorIs(t, err, container.ErrFactoryPanic)
}

func TestConfigServiceProvider_Preloaded(t *testing.T) {
	cfg := config.Defaults()
	cfg.App.Name = "Preloaded"
	c := boot(t, &providers.ConfigServiceProvider{Config: cfg, File: "testdata/ignored.yaml"})

	assert.Same(t, cfg, c.Make("config"))
	assert.Same(t, cfg, c.Make("configuration"))
}

func TestLoggingServiceProvider(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	var buf bytes.Buffer
	c := boot(t,
		&providers.ConfigServiceProvider{EnvFiles: []string{"testdata/missing.env"}},
		&providers.LoggingServiceProvider{Output: &buf},
	)

	logger := container.Resolve[*slog.Logger](c, "log")
	logger.Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestRoutingServiceProvider(t *testing.T) {
	var buf bytes.Buffer
	c := boot(t,
		&providers.ConfigServiceProvider{EnvFiles: []string{"testdata/missing.env"}},
		&providers.LoggingServiceProvider{Output: &buf},
		&providers.RoutingServiceProvider{},
	)

	assert.NotNil(t, container.Resolve[*routing.Router](c, "router"))
}

func TestFacadeServiceProvider_SetsContainerOnBoot(t *testing.T) {
	reg := facade.NewRegistry()
	c := container.New()
	c.Instance("answer", &struct{ n int }{n: 42})

	pr := container.NewProviderRegistry(c)
	pr.Register(&providers.FacadeServiceProvider{Registry: reg})
	assert.Nil(t, reg.Container(), "container is only set on Boot")

	pr.Boot()
	assert.Same(t, c, reg.Container())

	f := facade.Define[*struct{ n int }]("answer", facade.WithRegistry(reg))
	v, err := f.Root()
	require.NoError(t, err)
	assert.Equal(t, 42, v.n)
}

func TestFacadeServiceProvider_DefaultRegistry(t *testing.T) {
	t.Cleanup(facade.Clear)
	c := boot(t, &providers.FacadeServiceProvider{})

	assert.Same(t, c, facade.GetContainer())
}
