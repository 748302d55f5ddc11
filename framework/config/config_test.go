package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-facade/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// unsetEnv clears keys now and again after the test, since godotenv writes
// straight into the process environment.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		k := k
		_ = os.Unsetenv(k)
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

var envKeys = []string{
	"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_URL", "APP_PORT",
	"LOG_LEVEL", "LOG_FORMAT", "GREETING_FORMAT",
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, envKeys...)

	cfg := config.Load("testdata/missing.env")
	assert.Equal(t, config.Defaults(), cfg)
	assert.Equal(t, "Hello, %s!", cfg.Greeting.Format)
	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "MyApp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("GREETING_FORMAT", "Yo %s")

	cfg := config.Load("testdata/missing.env")

	assert.Equal(t, "MyApp", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "Yo %s", cfg.Greeting.Format)
}

func TestLoad_EnvFile(t *testing.T) {
	unsetEnv(t, envKeys...)

	cfg := config.Load("testdata/greeter.env")

	assert.Equal(t, "EnvGreeter", cfg.App.Name)
	assert.Equal(t, "Howdy, %s!", cfg.Greeting.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_AppDebug(t *testing.T) {
	t.Setenv("APP_DEBUG", "false")
	assert.False(t, config.Load("testdata/missing.env").App.Debug)

	t.Setenv("APP_DEBUG", "true")
	assert.True(t, config.Load("testdata/missing.env").App.Debug)
}

// ── LoadFile ─────────────────────────────────────────────────────────────────

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	unsetEnv(t, envKeys...)

	cfg, err := config.LoadFile("testdata/greeter.yaml", "testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "YamlGreeter", cfg.App.Name)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep their default")
	assert.Equal(t, "Hi %s", cfg.Greeting.Format)
}

func TestLoadFile_EnvWinsOverFile(t *testing.T) {
	unsetEnv(t, envKeys...)
	t.Setenv("APP_PORT", "7000")

	cfg, err := config.LoadFile("testdata/greeter.yaml", "testdata/missing.env")
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.App.Port)
	assert.Equal(t, "YamlGreeter", cfg.App.Name)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := config.LoadFile("testdata/nope.yaml")
	assert.ErrorContains(t, err, "config: read testdata/nope.yaml")

	_, err = config.LoadFile("testdata/broken.yaml")
	assert.ErrorContains(t, err, "config: parse testdata/broken.yaml")
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))

	unsetEnv(t, "MISSING_KEY")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))

	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}

	t.Setenv("BOOL_KEY", "false")
	assert.False(t, config.GetBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}
