package render

import (
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/isoview/pkg/fragment"
	"github.com/vango-dev/isoview/pkg/state"
)

func TestAdapterRender(t *testing.T) {
	a := NewAdapter(AdapterOptions{})
	root := fragment.MustNew(`<div ui-view></div>`, fragment.Options{RequestContext: "req"})

	el, err := a.Render(context.Background(), state.RenderInfo{
		State:   &state.State{Name: "app"},
		Element: root,
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	child, ok := el.(*fragment.Node)
	if !ok {
		t.Fatalf("Render() returned %T, want *fragment.Node", el)
	}
	if root.Child() != fragment.Fragment(child) {
		t.Error("rendered node should be the root's child")
	}
	if child.State() != "app" {
		t.Errorf("State() = %q, want %q", child.State(), "app")
	}
	if child.RequestContext() != "req" {
		t.Errorf("RequestContext() = %v, want %q", child.RequestContext(), "req")
	}
	if Owner(child) != a {
		t.Error("Owner() should return the adapter")
	}
	if child.HasMarkup() {
		t.Error("rendered node should start without markup")
	}
}

func TestAdapterTemplateConstructor(t *testing.T) {
	var seen state.RenderInfo
	a := NewAdapter(AdapterOptions{
		TemplateConstructor: func(_ context.Context, info state.RenderInfo) (any, error) {
			seen = info
			return "instance:" + info.State.Name, nil
		},
	})
	root := fragment.MustNew(`<div ui-view></div>`, fragment.Options{})

	el, err := a.Render(context.Background(), state.RenderInfo{
		State:      &state.State{Name: "app.home"},
		Element:    root,
		Parameters: map[string]string{"id": "1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := el.(*fragment.Node).Payload(); got != "instance:app.home" {
		t.Errorf("Payload() = %v", got)
	}
	if seen.Parameters["id"] != "1" {
		t.Errorf("constructor saw params %v", seen.Parameters)
	}
}

func TestAdapterTemplateConstructorError(t *testing.T) {
	boom := errors.New("boom")
	a := NewAdapter(AdapterOptions{
		TemplateConstructor: func(context.Context, state.RenderInfo) (any, error) { return nil, boom },
	})
	root := fragment.MustNew(`<div ui-view></div>`, fragment.Options{})

	_, err := a.Render(context.Background(), state.RenderInfo{State: &state.State{Name: "x"}, Element: root})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestAdapterRejectsNonFragment(t *testing.T) {
	a := NewAdapter(AdapterOptions{})

	for _, el := range []any{nil, "<div></div>", (*fragment.Node)(nil)} {
		_, err := a.Render(context.Background(), state.RenderInfo{State: &state.State{Name: "x"}, Element: el})
		if !errors.Is(err, fragment.ErrNotAFragment) {
			t.Errorf("Render(%#v) err = %v, want ErrNotAFragment", el, err)
		}
	}
}

func TestAdapterNoOps(t *testing.T) {
	a := NewAdapter(AdapterOptions{})
	ctx := context.Background()

	el, err := a.GetChildElement(ctx, "x")
	if err != nil || el != "x" {
		t.Errorf("GetChildElement() = %v, %v", el, err)
	}
	if err := a.Reset(ctx, state.RenderInfo{}); err != nil {
		t.Errorf("Reset() error: %v", err)
	}
	if err := a.Destroy(ctx, "x"); err != nil {
		t.Errorf("Destroy() error: %v", err)
	}
}

func TestOwnerNil(t *testing.T) {
	if Owner(nil) != nil {
		t.Error("Owner(nil) should be nil")
	}
	if Owner(fragment.MustNew(nil, fragment.Options{})) != nil {
		t.Error("Owner of an unowned node should be nil")
	}
}

// The adapter driven by a real state router produces a nested tree.
func TestAdapterWithRouter(t *testing.T) {
	root := fragment.MustNew(`<div ui-view></div>`, fragment.Options{})
	r := state.New(NewAdapter(AdapterOptions{}), root, state.Options{})

	activate := func(c *state.ActivateContext) error {
		n := c.Element.(*fragment.Node)
		if err := ApplyTemplate(c.Context, n, c.State.Template); err != nil {
			return err
		}
		n.SetData(c.Content)
		return nil
	}
	r.AddState(state.State{Name: "app", Template: `<main ui-view></main>`, Activate: activate})
	r.AddState(state.State{
		Name:     "app.home",
		Template: `<h1>Home</h1>`,
		Activate: activate,
		Resolve: func(context.Context, map[string]string) (any, error) {
			return map[string]string{"k": "v"}, nil
		},
	})

	if err := r.Transition(context.Background(), "app.home", nil); err != nil {
		t.Fatal(err)
	}

	got, err := root.Serialize("#app", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := `<div ui-view="" id="app"><main ui-view=""><h1>Home</h1>` +
		`<script>var dataIslands = dataIslands || {}; dataIslands["app.home"] = {"k":"v"};</script>` +
		`</main></div>`
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}
