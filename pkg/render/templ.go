package render

import (
	"bytes"
	"context"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/fragment"
	"github.com/vango-dev/isoview/pkg/state"
)

// Templ adapts a function returning templ components into a
// TemplateConstructor.
func Templ(fn func(ctx context.Context, info state.RenderInfo) templ.Component) TemplateConstructor {
	return func(ctx context.Context, info state.RenderInfo) (any, error) {
		return fn(ctx, info), nil
	}
}

// ApplyTemplate renders template into n's markup.
//
// A templ.Component is rendered with ctx; strings, byte slices and parsed
// html nodes are assigned directly. A nil template leaves n unchanged.
func ApplyTemplate(ctx context.Context, n *fragment.Node, template any) error {
	switch t := template.(type) {
	case nil:
		return nil
	case templ.Component:
		var buf bytes.Buffer
		if err := t.Render(ctx, &buf); err != nil {
			return errors.New("E205").WithDetailf("state %q", n.State()).Wrap(err)
		}
		return n.SetMarkup(buf.String())
	case string, []byte, *html.Node, []*html.Node:
		return n.SetMarkup(t)
	}
	return errors.New("E205").
		WithDetailf("state %q has template of type %T", n.State(), template).
		Wrap(fragment.ErrInvalidMarkup)
}
