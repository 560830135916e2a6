package state

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/router"
)

// Transition moves the router to the state called name and returns once
// the change has ended or failed. Transitions on one Router run one at a
// time; notification subscribers must not start a transition synchronously.
func (r *Router) Transition(ctx context.Context, name string, params map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	err := r.transition(ctx, name, params)
	if err != nil {
		r.logger.Debug("state transition failed", "state", name, "error", err)
		r.stateError.Emit(err)
		return err
	}
	r.logger.Debug("state transition complete", "state", name, "duration", time.Since(start))
	return nil
}

func (r *Router) transition(ctx context.Context, name string, params map[string]string) error {
	chain, err := r.chain(name)
	if err != nil {
		return err
	}
	leaf := chain[len(chain)-1]

	merged := maps.Clone(params)
	if merged == nil {
		merged = make(map[string]string)
	}
	for _, s := range chain {
		for k, v := range s.DefaultParams {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}

	routes := make([]string, 0, len(chain))
	levelParams := make([]map[string]string, len(chain))
	for i, s := range chain {
		routes = append(routes, s.Route)
		levelParams[i] = make(map[string]string)
		for _, p := range router.ParamNames(router.JoinRoutes(routes...)) {
			v, ok := merged[p]
			if !ok || v == "" {
				return &TransitionError{
					State: s.Name,
					Op:    "params",
					Err:   errors.New("E212").WithDetailf("%q requires parameter %q", s.Name, p).Wrap(ErrMissingParam),
				}
			}
			levelParams[i][p] = v
		}
	}

	r.changeStart.Emit(ChangeEvent{State: leaf, Parameters: maps.Clone(merged)})

	// keep is the length of the shared prefix between the active chain
	// and the new one.
	keep := 0
	for keep < len(r.active) && keep < len(chain) && r.active[keep].state == chain[keep] {
		keep++
	}

	for i := len(r.active) - 1; i >= keep; i-- {
		a := r.active[i]
		if err := r.guard(a.state.Name, "destroy", func() error {
			return r.renderer.Destroy(ctx, a.element)
		}); err != nil {
			r.active = r.active[:i]
			return err
		}
	}
	r.active = r.active[:keep]

	var activate []*activeState

	for i := 0; i < keep; i++ {
		a := r.active[i]
		if maps.Equal(a.params, levelParams[i]) {
			continue
		}
		content, err := r.resolve(ctx, a.state, merged)
		if err != nil {
			return err
		}
		if err := r.guard(a.state.Name, "reset", func() error {
			return r.renderer.Reset(ctx, RenderInfo{
				State:      a.state,
				Template:   a.state.Template,
				Element:    a.element,
				Content:    content,
				Parameters: maps.Clone(merged),
			})
		}); err != nil {
			return err
		}
		a.content = content
		a.params = levelParams[i]
		activate = append(activate, a)
	}

	for i := keep; i < len(chain); i++ {
		s := chain[i]
		content, err := r.resolve(ctx, s, merged)
		if err != nil {
			return err
		}

		r.beforeCreate.Emit(CreateEvent{State: s, Content: content, Parameters: maps.Clone(merged)})

		parent := r.root
		if i > 0 {
			parent = r.active[i-1].element
		}

		var element any
		if err := r.guard(s.Name, "render", func() error {
			container, err := r.renderer.GetChildElement(ctx, parent)
			if err != nil {
				return err
			}
			element, err = r.renderer.Render(ctx, RenderInfo{
				State:      s,
				Template:   s.Template,
				Element:    container,
				Content:    content,
				Parameters: maps.Clone(merged),
			})
			return err
		}); err != nil {
			return err
		}

		a := &activeState{state: s, element: element, content: content, params: levelParams[i]}
		r.active = append(r.active, a)
		activate = append(activate, a)

		r.afterCreate.Emit(CreateEvent{State: s, Element: element, Content: content, Parameters: maps.Clone(merged)})
	}

	for _, a := range activate {
		if a.state.Activate == nil {
			continue
		}
		if err := r.guard(a.state.Name, "activate", func() error {
			return a.state.Activate(&ActivateContext{
				Context:    ctx,
				State:      a.state,
				Element:    a.element,
				Content:    a.content,
				Parameters: maps.Clone(merged),
			})
		}); err != nil {
			return err
		}
	}

	path, leftover := router.Build(router.JoinRoutes(routes...), merged)
	r.loc.Set(router.WithQuery(path, leftover))
	r.currentParams = merged

	r.changeEnd.Emit(ChangeEvent{State: leaf, Parameters: maps.Clone(merged)})
	return nil
}

// chain returns the states from the top-level ancestor of name down to its
// deepest default child.
func (r *Router) chain(name string) ([]*State, error) {
	r.statesMu.RLock()
	defer r.statesMu.RUnlock()

	target, ok := r.states[name]
	if !ok {
		return nil, notFound(name, name)
	}
	for target.DefaultChild != "" {
		childName := target.Name + "." + target.DefaultChild
		child, ok := r.states[childName]
		if !ok {
			return nil, notFound(childName, name)
		}
		target = child
	}

	var chain []*State
	for n := target.Name; n != ""; n = ParentName(n) {
		s, ok := r.states[n]
		if !ok {
			return nil, notFound(n, name)
		}
		chain = append(chain, s)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

func notFound(missing, requested string) error {
	return &TransitionError{
		State: requested,
		Op:    "resolve",
		Err:   errors.New("E210").WithDetailf("state %q", missing).Wrap(ErrStateNotFound),
	}
}

func (r *Router) resolve(ctx context.Context, s *State, params map[string]string) (any, error) {
	if s.Resolve == nil {
		return nil, nil
	}
	var content any
	err := r.guard(s.Name, "resolve", func() error {
		var err error
		content, err = s.Resolve(ctx, maps.Clone(params))
		return err
	})
	return content, err
}

// guard runs fn, converting a returned error or a panic into a
// *TransitionError for the named state.
func (r *Router) guard(name, op string, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &TransitionError{
				State: name,
				Op:    op,
				Err:   errors.New("E214").WithDetail(fmt.Sprint(p)).Wrap(ErrHookPanic),
			}
		}
	}()
	if err := fn(); err != nil {
		return &TransitionError{State: name, Op: op, Err: err}
	}
	return nil
}
