package greeting

import (
	"github.com/km-arc/go-facade/framework/config"
	"github.com/km-arc/go-facade/framework/container"
)

// Provider binds the greeting service as a singleton.
//
// Bound abstracts:
//   - "greeting" → *greeting.Service
type Provider struct {
	container.BaseProvider
}

func (p *Provider) Register(app *container.Container) {
	app.Singleton(Key, func(c *container.Container) any {
		format := DefaultFormat
		if cfg, err := container.TryResolve[*config.Config](c, "config"); err == nil {
			format = cfg.Greeting.Format
		}
		return NewService(format)
	})
}
