package isoview

import (
	"log/slog"

	"github.com/vango-dev/isoview/pkg/location"
	"github.com/vango-dev/isoview/pkg/render"
	"github.com/vango-dev/isoview/pkg/ssr"
)

// Config configures a StateRouter.
type Config struct {
	// Placeholder is the tag or attribute name marking where a child state
	// renders. Default: "ui-view".
	Placeholder string

	// TemplateConstructor builds a template instance for each rendered
	// state on the server; DefaultActivateServer applies it.
	TemplateConstructor render.TemplateConstructor

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Middleware wraps every server render.
	Middleware []ssr.Middleware

	// Location is used by the client router. Defaults to in-memory.
	Location location.Location
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
