package state

import (
	"context"
	"strings"
)

// ResolveFunc loads a state's content before it is rendered.
type ResolveFunc func(ctx context.Context, params map[string]string) (any, error)

// ActivateFunc runs after a state and its ancestors are rendered.
type ActivateFunc func(*ActivateContext) error

// State is a node in the state tree.
type State struct {
	// Name is the dot-separated path of the state, e.g. "app.topics".
	Name string

	// Route is this state's URL fragment, joined with its ancestors'.
	Route string

	// Template is passed to the Renderer untouched.
	Template any

	// DefaultChild is the relative name of the child entered when this
	// state is the transition target.
	DefaultChild string

	// DefaultParams fill parameters the caller did not supply.
	DefaultParams map[string]string

	// Data is arbitrary metadata for hooks and renderers.
	Data any

	Resolve ResolveFunc

	// Activate runs after rendering. ActivateServer and ActivateClient are
	// mode-specific defaults picked by callers that know the mode.
	Activate       ActivateFunc
	ActivateServer ActivateFunc
	ActivateClient ActivateFunc
}

// Parent returns the name of the parent state, or "" for a top-level state.
func (s *State) Parent() string {
	return ParentName(s.Name)
}

// ParentName returns everything before the last dot of name.
func ParentName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

// RenderInfo describes one render call.
type RenderInfo struct {
	// State is the state being rendered.
	State *State

	Template any

	// Element is the value returned by GetChildElement for the parent.
	Element any

	// Content is the value returned by the state's Resolve hook.
	Content any

	Parameters map[string]string
}

// Renderer turns states into rendered elements.
//
// For the first level, GetChildElement receives the router's root element;
// afterwards it receives what Render returned for the parent.
type Renderer interface {
	Render(ctx context.Context, info RenderInfo) (any, error)
	GetChildElement(ctx context.Context, element any) (any, error)
	Reset(ctx context.Context, info RenderInfo) error
	Destroy(ctx context.Context, element any) error
}

// ActivateContext is passed to activation hooks.
type ActivateContext struct {
	Context context.Context
	State   *State

	// Element is the value the Renderer returned for this state.
	Element any

	Content    any
	Parameters map[string]string

	// IsServer is set by callers that wrap activation with mode knowledge.
	IsServer bool
}

// CreateEvent is emitted around the rendering of each new state.
type CreateEvent struct {
	State      *State
	Element    any // nil before creation
	Content    any
	Parameters map[string]string
}

// ChangeEvent is emitted at the start and end of a transition.
type ChangeEvent struct {
	State      *State
	Parameters map[string]string
}
