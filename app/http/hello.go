// Package http holds the demo application's controllers.
package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/km-arc/go-facade/app/greeting"
	gohttp "github.com/km-arc/go-facade/framework/http"
	"github.com/km-arc/go-facade/framework/routing"
)

var helloPage = template.Must(template.New("hello").Parse(
	`<html><body><h1>{{.}}</h1></body></html>`))

// HelloController greets through the greeting facade; it never holds the
// service itself.
type HelloController struct {
	Logger *slog.Logger
}

// Routes registers the controller's routes.
func (c *HelloController) Routes(r *routing.Router) {
	r.Get("/hello/{name}", c.Show)
	r.Get("/api/hello/{name}", c.ShowJSON)
}

// Show handles GET /hello/{name}.
func (c *HelloController) Show(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	msg, ok := c.greet(res, r)
	if !ok {
		return
	}
	if err := res.HTML(http.StatusOK, helloPage, msg); err != nil {
		c.logger().ErrorContext(r.Context(), "render hello page", "error", err)
	}
}

// ShowJSON handles GET /api/hello/{name}.
func (c *HelloController) ShowJSON(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	msg, ok := c.greet(res, r)
	if !ok {
		return
	}
	res.Success(map[string]string{"greeting": msg})
}

func (c *HelloController) greet(res *gohttp.Response, r *http.Request) (string, bool) {
	g, err := greeting.Facade.Root()
	if err != nil {
		c.logger().ErrorContext(r.Context(), "greeting facade unavailable", "error", err)
		res.ServerError()
		return "", false
	}
	return g.Greet(routing.Param(r, "name")), true
}

func (c *HelloController) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
