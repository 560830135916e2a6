package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/isoview/pkg/render"
	"github.com/vango-dev/isoview/pkg/router"
)

// Config configures a Server.
type Config struct {
	// Address is the listen address for Run. Default: ":3000".
	Address string

	// Renderer renders matched states.
	Renderer Renderer

	// Routes maps request paths to states.
	Routes *router.Router

	// Document is the shell around every rendered body.
	Document render.Page

	// PlaceholderID decorates the root placeholder of every render
	// ("#app" or ".app"). Empty leaves the root undecorated.
	PlaceholderID string

	// RequestContext derives the value handed to every fragment of a
	// render. Nil passes the *http.Request itself.
	RequestContext func(*http.Request) any

	// Metrics exposes Gatherer at /metrics.
	Metrics bool

	// Gatherer defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// ReadHeaderTimeout bounds reading request headers. Default: 10s.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown. Default: 10s.
	ShutdownTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = ":3000"
	}
	if c.Routes == nil {
		c.Routes = router.New()
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = 10 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}
