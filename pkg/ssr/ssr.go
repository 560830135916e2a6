package ssr

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/fragment"
	"github.com/vango-dev/isoview/pkg/location"
	"github.com/vango-dev/isoview/pkg/render"
	"github.com/vango-dev/isoview/pkg/state"
)

// Request describes one server render.
type Request struct {
	// State is the name of the target state.
	State string

	Params map[string]string

	// Root is the outermost markup: a string, a *fragment.Node, or nil for
	// an empty element carrying the placeholder attribute.
	Root any

	// Context is an opaque value available to every fragment through
	// RequestContext. Ignored when Root is a *fragment.Node.
	Context any

	// PlaceholderID decorates the root's placeholder: "#id" or ".class".
	PlaceholderID string
}

// Result is the output of a successful render.
type Result struct {
	Markup string

	// Stylesheets holds the CSS of every level, outermost first.
	Stylesheets []string

	// Path is the location the router settled on.
	Path string

	RequestID string
}

// StateSource supplies the state definitions registered for each request.
type StateSource interface {
	States() []state.State
}

// StateList is a fixed StateSource.
type StateList []state.State

// States returns l.
func (l StateList) States() []state.State { return l }

// RenderFunc renders a request.
type RenderFunc func(ctx context.Context, req Request) (*Result, error)

// Middleware wraps a RenderFunc.
type Middleware func(next RenderFunc) RenderFunc

// Options configures an Orchestrator.
type Options struct {
	// Placeholder is the tag or attribute name marking child insertion
	// points. Defaults to fragment.DefaultPlaceholder.
	Placeholder string

	TemplateConstructor render.TemplateConstructor

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Middleware wraps every render, outermost first.
	Middleware []Middleware
}

// Orchestrator renders states to HTML.
type Orchestrator struct {
	states StateSource
	opts   Options
	render RenderFunc
}

// New creates an Orchestrator over states.
func New(states StateSource, opts Options) *Orchestrator {
	if opts.Placeholder == "" {
		opts.Placeholder = fragment.DefaultPlaceholder
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	o := &Orchestrator{states: states, opts: opts}

	h := o.renderState
	for i := len(opts.Middleware) - 1; i >= 0; i-- {
		h = opts.Middleware[i](h)
	}
	o.render = h
	return o
}

// DefaultRoot returns the root markup used when a request has none.
func DefaultRoot(placeholder string) string {
	return "<div " + placeholder + "></div>"
}

// Render transitions a private router to req.State and serializes the
// result. A transition error is returned unchanged. If ctx ends first its
// error is returned; the transition is left to finish on its own.
func (o *Orchestrator) Render(ctx context.Context, req Request) (*Result, error) {
	if RequestID(ctx) == "" {
		ctx = WithRequestID(ctx, uuid.NewString())
	}
	return o.render(ctx, req)
}

func (o *Orchestrator) renderState(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	id := RequestID(ctx)
	log := o.opts.Logger.With("request_id", id, "state", req.State)

	root, err := o.root(req)
	if err != nil {
		return nil, err
	}

	loc := location.NewMemory("/")
	adapter := render.NewAdapter(render.AdapterOptions{
		TemplateConstructor: o.opts.TemplateConstructor,
		Logger:              o.opts.Logger,
	})
	router := state.New(adapter, root, state.Options{Location: loc, Logger: o.opts.Logger})
	for _, s := range o.states.States() {
		if err := router.AddState(s); err != nil {
			return nil, err
		}
	}

	settled := make(chan error, 1)
	settle := func(err error) {
		select {
		case settled <- err:
		default:
		}
	}

	cleanups := []func(){
		router.OnBeforeCreateState(func(e state.CreateEvent) {
			log.Debug("creating state", "level", e.State.Name)
		}),
		router.OnStateChangeEnd(func(state.ChangeEvent) { settle(nil) }),
		router.OnStateError(settle),
	}
	defer func() {
		for _, c := range cleanups {
			c()
		}
	}()

	router.Go(context.WithoutCancel(ctx), req.State, req.Params)

	select {
	case err = <-settled:
	case <-ctx.Done():
		log.Error("render abandoned", "error", ctx.Err())
		return nil, ctx.Err()
	}
	if err != nil {
		log.Error("render failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	css := []string{}
	markup, err := root.Serialize(req.PlaceholderID, &css)
	if err != nil {
		log.Error("serialize failed", "error", err)
		return nil, err
	}

	log.Debug("render complete", "duration", time.Since(start), "stylesheets", len(css))
	return &Result{
		Markup:      markup,
		Stylesheets: css,
		Path:        loc.Get(),
		RequestID:   id,
	}, nil
}

func (o *Orchestrator) root(req Request) (*fragment.Node, error) {
	switch r := req.Root.(type) {
	case nil:
		return fragment.New(DefaultRoot(o.opts.Placeholder), fragment.Options{
			Placeholder:    o.opts.Placeholder,
			RequestContext: req.Context,
		})
	case string:
		if r == "" {
			r = DefaultRoot(o.opts.Placeholder)
		}
		return fragment.New(r, fragment.Options{
			Placeholder:    o.opts.Placeholder,
			RequestContext: req.Context,
		})
	case *fragment.Node:
		if r != nil {
			return r, nil
		}
	}
	return nil, errors.New("E203").
		WithDetailf("cannot use %T as root", req.Root).
		Wrap(fragment.ErrInvalidMarkup)
}
