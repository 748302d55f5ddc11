package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-facade/app/greeting"
	apphttp "github.com/km-arc/go-facade/app/http"
	"github.com/km-arc/go-facade/facade/facadetest"
	"github.com/km-arc/go-facade/framework/container"
	"github.com/km-arc/go-facade/framework/routing"
)

type greeterMock struct{ mock.Mock }

func (m *greeterMock) Greet(name string) string { return m.Called(name).String(0) }

func newRouter(logger *slog.Logger) *routing.Router {
	r := routing.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	(&apphttp.HelloController{Logger: logger}).Routes(r)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func bootContainer(t *testing.T) {
	t.Helper()
	c := container.New()
	container.NewProviderRegistry(c).Register(&greeting.Provider{})
	facadetest.UseContainer(t, c)
}

func TestHello_HTML(t *testing.T) {
	bootContainer(t)

	rr := get(newRouter(nil), "/hello/world")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<html><body><h1>Hello, World!</h1></body></html>", rr.Body.String())
}

func TestHello_JSON(t *testing.T) {
	bootContainer(t)

	rr := get(newRouter(nil), "/api/hello/ada")

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Hello, Ada!", body["data"]["greeting"])
}

func TestHello_EscapesName(t *testing.T) {
	bootContainer(t)

	rr := get(newRouter(nil), "/hello/%3Cb%3E")
	assert.Contains(t, rr.Body.String(), "&lt;b&gt;")
}

func TestHello_UsesSwappedMock(t *testing.T) {
	bootContainer(t)
	m := facadetest.SwapMock(t, greeting.Facade, &greeterMock{})
	m.On("Greet", "bob").Return("mocked bob").Once()

	rr := get(newRouter(nil), "/hello/bob")
	assert.Equal(t, "<html><body><h1>mocked bob</h1></body></html>", rr.Body.String())
}

func TestHello_NoContainer(t *testing.T) {
	facadetest.UseContainer(t, nil)
	var logs bytes.Buffer

	rr := get(newRouter(slog.New(slog.NewTextHandler(&logs, nil))), "/hello/bob")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, logs.String(), "greeting facade unavailable")
	assert.Contains(t, logs.String(), "container has not been set")
}
