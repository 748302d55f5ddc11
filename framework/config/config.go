package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the central typed configuration struct.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
	Greeting GreetingConfig `yaml:"greeting"`
}

type AppConfig struct {
	Name  string `yaml:"name"`
	Env   string `yaml:"env"` // local | production | testing
	Debug bool   `yaml:"debug"`
	URL   string `yaml:"url"`
	Port  string `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

type GreetingConfig struct {
	// Format is a fmt verb string taking the name, e.g. "Hello, %s!".
	Format string `yaml:"format"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:  "GoFacade",
			Env:   "local",
			Debug: true,
			URL:   "http://localhost",
			Port:  "8000",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Greeting: GreetingConfig{
			Format: "Hello, %s!",
		},
	}
}

// Load reads .env (if present) and populates a Config from environment
// variables on top of Defaults. Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	cfg := Defaults()
	loadEnvFiles(envFiles)
	applyEnv(cfg)
	return cfg
}

// LoadFile is like Load but reads a YAML file between the defaults and the
// environment, so APP_* variables still win over the file.
//
//	app:
//	  name: Greeter
//	greeting:
//	  format: "Hi %s"
func LoadFile(path string, envFiles ...string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	loadEnvFiles(envFiles)
	applyEnv(cfg)
	return cfg, nil
}

func loadEnvFiles(files []string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)
}

func applyEnv(cfg *Config) {
	cfg.App.Name = env("APP_NAME", cfg.App.Name)
	cfg.App.Env = env("APP_ENV", cfg.App.Env)
	cfg.App.Debug = envBool("APP_DEBUG", cfg.App.Debug)
	cfg.App.URL = env("APP_URL", cfg.App.URL)
	cfg.App.Port = env("APP_PORT", cfg.App.Port)

	cfg.Log.Level = env("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = env("LOG_FORMAT", cfg.Log.Format)

	cfg.Greeting.Format = env("GREETING_FORMAT", cfg.Greeting.Format)
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
