package state

import (
	"context"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/internal/observe"
	"github.com/vango-dev/isoview/pkg/location"
)

// Options configures a Router.
type Options struct {
	// Location receives the path of each completed transition.
	// Defaults to a fresh location.Memory.
	Location location.Location

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Router drives transitions between states.
type Router struct {
	renderer Renderer
	root     any
	loc      location.Location
	logger   *slog.Logger

	statesMu sync.RWMutex
	states   map[string]*State

	// mu serializes transitions; it guards the fields below.
	mu            sync.Mutex
	active        []*activeState
	currentParams map[string]string

	beforeCreate observe.Stream[CreateEvent]
	afterCreate  observe.Stream[CreateEvent]
	changeStart  observe.Stream[ChangeEvent]
	changeEnd    observe.Stream[ChangeEvent]
	stateError   observe.Stream[error]
}

type activeState struct {
	state   *State
	element any
	content any
	params  map[string]string // route params relevant to this level
}

// New creates a Router that renders into root.
func New(renderer Renderer, root any, opts Options) *Router {
	if opts.Location == nil {
		opts.Location = location.NewMemory("/")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Router{
		renderer: renderer,
		root:     root,
		loc:      opts.Location,
		logger:   opts.Logger,
		states:   make(map[string]*State),
	}
}

// AddState registers a state. Ancestors may be added later, but must exist
// by the time a transition reaches them.
func (r *Router) AddState(s State) error {
	if err := Validate(s); err != nil {
		return err
	}

	r.statesMu.Lock()
	defer r.statesMu.Unlock()

	if _, exists := r.states[s.Name]; exists {
		return errors.New("E211").
			WithDetailf("state %q already added", s.Name).
			Wrap(ErrInvalidState)
	}
	s.DefaultParams = maps.Clone(s.DefaultParams)
	r.states[s.Name] = &s
	return nil
}

// State returns the registered state called name.
func (r *Router) State(name string) (*State, bool) {
	r.statesMu.RLock()
	defer r.statesMu.RUnlock()
	s, ok := r.states[name]
	return s, ok
}

// Current returns the active leaf state and its parameters. name is empty
// before the first successful transition.
func (r *Router) Current() (name string, params map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.active) == 0 {
		return "", nil
	}
	return r.active[len(r.active)-1].state.Name, maps.Clone(r.currentParams)
}

// Location returns the router's location.
func (r *Router) Location() location.Location { return r.loc }

// Go performs the transition on a new goroutine. The outcome is reported
// only through the change-end and state-error notifications.
func (r *Router) Go(ctx context.Context, name string, params map[string]string) {
	go func() {
		_ = r.Transition(ctx, name, params)
	}()
}

// OnBeforeCreateState subscribes to the notification sent before each new
// state is rendered.
func (r *Router) OnBeforeCreateState(fn func(CreateEvent)) observe.Cleanup {
	return r.beforeCreate.Subscribe(fn)
}

// OnAfterCreateState subscribes to the notification sent after each new
// state is rendered.
func (r *Router) OnAfterCreateState(fn func(CreateEvent)) observe.Cleanup {
	return r.afterCreate.Subscribe(fn)
}

// OnStateChangeStart subscribes to the start of every transition.
func (r *Router) OnStateChangeStart(fn func(ChangeEvent)) observe.Cleanup {
	return r.changeStart.Subscribe(fn)
}

// OnStateChangeEnd subscribes to the end of every successful transition.
func (r *Router) OnStateChangeEnd(fn func(ChangeEvent)) observe.Cleanup {
	return r.changeEnd.Subscribe(fn)
}

// OnStateError subscribes to failed transitions. The error is always a
// *TransitionError.
func (r *Router) OnStateError(fn func(error)) observe.Cleanup {
	return r.stateError.Subscribe(fn)
}

// Validate reports whether s can be added to a Router.
func Validate(s State) error {
	if !validName(s.Name) {
		return errors.New("E211").
			WithDetailf("invalid state name %q", s.Name).
			Wrap(ErrInvalidState)
	}
	return nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return false
		}
	}
	return true
}
