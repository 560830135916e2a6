package render

import (
	"context"
	"log/slog"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/fragment"
	"github.com/vango-dev/isoview/pkg/state"
)

// TemplateConstructor builds a template instance for a state being
// rendered. The result is stored as the new node's payload.
type TemplateConstructor func(ctx context.Context, info state.RenderInfo) (any, error)

// AdapterOptions configures an Adapter.
type AdapterOptions struct {
	TemplateConstructor TemplateConstructor

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Adapter renders states into fragment nodes.
type Adapter struct {
	construct TemplateConstructor
	logger    *slog.Logger
}

var _ state.Renderer = (*Adapter)(nil)

// NewAdapter creates an Adapter.
func NewAdapter(opts AdapterOptions) *Adapter {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Adapter{
		construct: opts.TemplateConstructor,
		logger:    opts.Logger,
	}
}

// Render creates a child of info.Element for info.State.
func (a *Adapter) Render(ctx context.Context, info state.RenderInfo) (any, error) {
	name := ""
	if info.State != nil {
		name = info.State.Name
	}

	parent, ok := info.Element.(*fragment.Node)
	if !ok || parent == nil {
		return nil, errors.New("E201").
			WithDetailf("cannot render state %q into %T", name, info.Element).
			Wrap(fragment.ErrNotAFragment)
	}

	child, err := parent.CreateChild(nil, name)
	if err != nil {
		return nil, err
	}
	child.SetOwner(a)

	if a.construct == nil {
		return child, nil
	}
	instance, err := a.construct(ctx, info)
	if err != nil {
		return nil, errors.New("E205").WithDetailf("state %q", name).Wrap(err)
	}
	child.SetPayload(instance)
	a.logger.Debug("template constructed", "state", name)
	return child, nil
}

// GetChildElement returns element: a node renders its child into itself.
func (a *Adapter) GetChildElement(_ context.Context, element any) (any, error) {
	return element, nil
}

// Reset is a no-op; fragments live for a single request.
func (a *Adapter) Reset(context.Context, state.RenderInfo) error { return nil }

// Destroy is a no-op; fragments live for a single request.
func (a *Adapter) Destroy(context.Context, any) error { return nil }

// Owner returns the Adapter that created n, or nil.
func Owner(n *fragment.Node) *Adapter {
	if n == nil {
		return nil
	}
	a, _ := n.Owner().(*Adapter)
	return a
}
