package router

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrDuplicateRoute is returned when a pattern is registered twice.
	ErrDuplicateRoute = errors.New("router: duplicate route")

	// ErrParamConflict is returned when two patterns disagree on the name
	// or type of a parameter at the same position.
	ErrParamConflict = errors.New("router: conflicting parameter")

	// ErrNoRoute is returned by callers when a path matches no route.
	ErrNoRoute = errors.New("router: no route")
)

// Match is the result of a successful lookup.
type Match struct {
	// State is the name of the state bound to the route.
	State string

	// Pattern is the registered route pattern.
	Pattern string

	// Params holds the decoded parameters. A catch-all value joins its
	// segments with "/".
	Params map[string]string
}

// Router is a route table from URL patterns to state names.
// It is safe for concurrent use.
type Router struct {
	mu     sync.RWMutex
	root   *node
	states map[string]string // state -> pattern
}

// New creates an empty Router.
func New() *Router {
	return &Router{
		root:   newNode(""),
		states: make(map[string]string),
	}
}

// Add binds pattern to stateName.
func (r *Router) Add(pattern, stateName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	leaf, conflict := r.root.insert(pattern)
	if conflict != "" {
		return fmt.Errorf("%w: %q in %q", ErrParamConflict, conflict, pattern)
	}
	if leaf.state != "" {
		return fmt.Errorf("%w: %q already bound to %q", ErrDuplicateRoute, pattern, leaf.state)
	}
	leaf.state = stateName
	leaf.pattern = pattern
	r.states[stateName] = pattern
	return nil
}

// Match looks up path. Paths that fail canonicalization never match.
func (r *Router) Match(path string) (*Match, bool) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return nil, false
	}
	segments, err := decodeSegments(canonical)
	if err != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	params := make(map[string]string)
	found, ok := r.root.match(segments, params)
	if !ok {
		return nil, false
	}
	return &Match{State: found.state, Pattern: found.pattern, Params: params}, true
}

// Pattern returns the pattern bound to stateName.
func (r *Router) Pattern(stateName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.states[stateName]
	return p, ok
}

// Routes returns every registered pattern, sorted.
func (r *Router) Routes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.states))
	for _, p := range r.states {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// StaticRoutes maps each parameterless pattern to its state. These are the
// routes that can be rendered without caller input.
func (r *Router) StaticRoutes() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string)
	for state, p := range r.states {
		if len(ParamNames(p)) == 0 {
			out[p] = state
		}
	}
	return out
}

// IsDynamic reports whether pattern has a parameter or catch-all segment.
func IsDynamic(pattern string) bool {
	return strings.ContainsAny(pattern, ":*")
}
