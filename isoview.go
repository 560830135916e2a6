package isoview

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/internal/observe"
	"github.com/vango-dev/isoview/pkg/fragment"
	"github.com/vango-dev/isoview/pkg/render"
	"github.com/vango-dev/isoview/pkg/ssr"
	"github.com/vango-dev/isoview/pkg/state"
)

// ErrWrongMode is returned by operations that exist only in the other
// execution mode.
var ErrWrongMode = stderrors.New("isoview: operation not available in this execution mode")

// AddEvent is emitted for every AddState call.
type AddEvent struct {
	State    state.State
	IsServer bool
}

// StateHandle is returned by AddState.
type StateHandle struct {
	name     string
	activate observe.Stream[*state.ActivateContext]
}

// Name returns the state name.
func (h *StateHandle) Name() string { return h.name }

// OnActivate subscribes to activations of the state. Subscribers run
// before the state's own activation hook.
func (h *StateHandle) OnActivate(fn func(*state.ActivateContext)) observe.Cleanup {
	return h.activate.Subscribe(fn)
}

// StateRouter is the mode-aware entry point.
type StateRouter struct {
	server bool
	cfg    Config

	mu     sync.RWMutex
	states []state.State
	names  map[string]bool
	stash  any

	// client is the long-lived router; nil in server mode.
	client *state.Router

	// ssr renders requests; nil in client mode.
	ssr *ssr.Orchestrator

	added observe.Stream[AddEvent]
}

// New creates a StateRouter for the current execution mode. renderer and
// root are used only in client mode; server renders always use fragments.
func New(renderer state.Renderer, root any, cfg Config) *StateRouter {
	return newStateRouter(IsServer(), renderer, root, cfg)
}

func newStateRouter(server bool, renderer state.Renderer, root any, cfg Config) *StateRouter {
	r := &StateRouter{
		server: server,
		cfg:    cfg,
		names:  make(map[string]bool),
	}
	if server {
		r.ssr = ssr.New(r, ssr.Options{
			Placeholder:         cfg.Placeholder,
			TemplateConstructor: cfg.TemplateConstructor,
			Logger:              cfg.logger(),
			Middleware:          cfg.Middleware,
		})
	} else {
		r.client = state.New(renderer, root, state.Options{
			Location: cfg.Location,
			Logger:   cfg.logger(),
		})
	}
	return r
}

// IsServer reports the mode this router was built for.
func (r *StateRouter) IsServer() bool { return r.server }

// OnAdd subscribes to AddState calls.
func (r *StateRouter) OnAdd(fn func(AddEvent)) observe.Cleanup {
	return r.added.Subscribe(fn)
}

// AddState registers s.
//
// When s.Activate is nil it defaults to s.ActivateServer (falling back to
// DefaultActivateServer) on the server and to s.ActivateClient in the
// browser. The chosen hook is wrapped so that IsServer is set and the
// handle's subscribers are notified before it runs.
func (r *StateRouter) AddState(s state.State) (*StateHandle, error) {
	r.added.Emit(AddEvent{State: s, IsServer: r.server})

	if err := state.Validate(s); err != nil {
		return nil, err
	}

	activate := s.Activate
	if activate == nil {
		if r.server {
			activate = s.ActivateServer
			if activate == nil {
				activate = DefaultActivateServer
			}
		} else {
			activate = s.ActivateClient
		}
	}

	h := &StateHandle{name: s.Name}
	server := r.server
	s.Activate = func(c *state.ActivateContext) error {
		c.IsServer = server
		h.activate.Emit(c)
		if activate == nil {
			return nil
		}
		return activate(c)
	}

	if !r.server {
		if err := r.client.AddState(s); err != nil {
			return nil, err
		}
		return h, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.names[s.Name] {
		return nil, errors.New("E211").
			WithDetailf("state %q already added", s.Name).
			Wrap(state.ErrInvalidState)
	}
	r.names[s.Name] = true
	r.states = append(r.states, s)
	return h, nil
}

// States returns the server-mode definitions in registration order.
func (r *StateRouter) States() []state.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]state.State, len(r.states))
	copy(out, r.states)
	return out
}

// RenderToHTML renders the named state on the server. root is the outer
// markup (string, *fragment.Node or nil); value becomes every fragment's
// request context.
func (r *StateRouter) RenderToHTML(ctx context.Context, name string, params map[string]string, root any, value any) (*ssr.Result, error) {
	return r.RenderRequest(ctx, ssr.Request{
		State:   name,
		Params:  params,
		Root:    root,
		Context: value,
	})
}

// RenderRequest is RenderToHTML with every request field available.
func (r *StateRouter) RenderRequest(ctx context.Context, req ssr.Request) (*ssr.Result, error) {
	if !r.server {
		return nil, ErrWrongMode
	}
	return r.ssr.Render(ctx, req)
}

// Go navigates to the named state in either mode, so calling code need
// not know where it runs. On the server it renders with the default root
// and returns the result. In the browser it remembers value (when non-nil)
// for StashedContext, starts the transition and returns a nil result.
func (r *StateRouter) Go(ctx context.Context, name string, params map[string]string, value any) (*ssr.Result, error) {
	if r.server {
		return r.RenderToHTML(ctx, name, params, nil, value)
	}
	if value != nil {
		r.mu.Lock()
		r.stash = value
		r.mu.Unlock()
	}
	r.client.Go(ctx, name, params)
	return nil, nil
}

// StashedContext returns the most recent non-nil value passed to Go in
// client mode.
func (r *StateRouter) StashedContext() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stash
}

// Singleton returns the long-lived client router, or nil on the server.
func (r *StateRouter) Singleton() *state.Router {
	if r.server {
		return nil
	}
	return r.client
}

// DefaultActivateServer fills a server fragment: it applies the constructed
// template instance, or the state's Template when there is none, and
// publishes resolved content as the fragment's data island.
func DefaultActivateServer(c *state.ActivateContext) error {
	n, ok := c.Element.(*fragment.Node)
	if !ok || n == nil {
		return errors.New("E201").
			WithDetailf("activation element is %T", c.Element).
			Wrap(fragment.ErrNotAFragment)
	}

	tpl := n.Payload()
	if tpl == nil && c.State != nil {
		tpl = c.State.Template
	}
	if err := render.ApplyTemplate(c.Context, n, tpl); err != nil {
		return err
	}
	if c.Content != nil {
		n.SetData(c.Content)
	}
	return nil
}
