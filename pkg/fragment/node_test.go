package fragment

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func serialize(t *testing.T, n *Node, id string) (string, []string) {
	t.Helper()
	var css []string
	out, err := n.Serialize(id, &css)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	return out, css
}

func TestSerializeLeaf(t *testing.T) {
	n := MustNew(`<p>hi</p>`, Options{State: "leaf"})

	got, _ := serialize(t, n, "")
	if got != "<p>hi</p>" {
		t.Errorf("got %q, want %q", got, "<p>hi</p>")
	}
}

func TestSerializeLeafWithData(t *testing.T) {
	n := MustNew(`<p>hi</p>`, Options{State: "child"})
	n.SetData(map[string]int{"a": 1})

	got, _ := serialize(t, n, "")
	want := `<p>hi</p><script>var dataIslands = dataIslands || {}; dataIslands["child"] = {"a":1};</script>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeDataWithoutStateEmitsNoIsland(t *testing.T) {
	n := MustNew(`<p>hi</p>`, Options{})
	n.SetData(map[string]int{"a": 1})

	got, _ := serialize(t, n, "")
	if got != "<p>hi</p>" {
		t.Errorf("got %q, want %q", got, "<p>hi</p>")
	}
}

func TestSerializeChildSplice(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	if _, err := root.CreateChild(`<p>hi</p>`, "app"); err != nil {
		t.Fatal(err)
	}

	got, _ := serialize(t, root, "")
	want := `<div ui-view=""><p>hi</p></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeSplicesAfterExistingContent(t *testing.T) {
	root := MustNew(`<div ui-view><span>loading</span></div>`, Options{})
	root.CreateChild(`<p>hi</p>`, "app")

	got, _ := serialize(t, root, "")
	want := `<div ui-view=""><span>loading</span><p>hi</p></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializePlaceholderID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"id", "#app", `<div ui-view="" id="app"><p>hi</p></div>`},
		{"class", ".app", `<div ui-view="" class="app"><p>hi</p></div>`},
		{"none", "", `<div ui-view=""><p>hi</p></div>`},
		{"unknown prefix", "app", `<div ui-view=""><p>hi</p></div>`},
		{"bare hash", "#", `<div ui-view=""><p>hi</p></div>`},
		{"bare dot", ".", `<div ui-view=""><p>hi</p></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := MustNew(`<div ui-view></div>`, Options{})
			root.CreateChild(`<p>hi</p>`, "app")

			got, _ := serialize(t, root, tt.id)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializePlaceholderClassAppends(t *testing.T) {
	root := MustNew(`<div class="shell" ui-view></div>`, Options{})
	root.CreateChild(`<p>hi</p>`, "app")

	got, _ := serialize(t, root, ".app")
	want := `<div class="shell app" ui-view=""><p>hi</p></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeOnlyOutermostPlaceholderDecorated(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	app, _ := root.CreateChild(`<section ui-view></section>`, "app")
	app.CreateChild(`<p>leaf</p>`, "app.leaf")

	got, _ := serialize(t, root, "#app")
	want := `<div ui-view="" id="app"><section ui-view=""><p>leaf</p></section></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeNested(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	app, _ := root.CreateChild(`<header>top</header><main><ui-view></ui-view></main>`, "app")
	home, _ := app.CreateChild(`<p>home</p>`, "app.home")
	home.SetData(map[string]string{"title": "Home"})

	got, _ := serialize(t, root, "")
	want := `<div ui-view=""><header>top</header><main><ui-view><p>home</p>` +
		`<script>var dataIslands = dataIslands || {}; dataIslands["app.home"] = {"title":"Home"};</script>` +
		`</ui-view></main></div>`
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestSerializeDepthN(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	level := root
	for _, name := range []string{"a", "a.b", "a.b.c", "a.b.c.d"} {
		next, err := level.CreateChild(`<div ui-view></div>`, name)
		if err != nil {
			t.Fatal(err)
		}
		level = next
	}
	level.SetChild(nil)

	// The deepest level keeps an empty placeholder.
	got, _ := serialize(t, root, "")
	want := strings.Repeat(`<div ui-view="">`, 5) + strings.Repeat(`</div>`, 5)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeIslandAtEachLevel(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	app, _ := root.CreateChild(`<div ui-view></div>`, "app")
	app.SetData(1)
	leaf, _ := app.CreateChild(`<p>x</p>`, "app.leaf")
	leaf.SetData(2)

	got, _ := serialize(t, root, "")
	want := `<div ui-view=""><div ui-view=""><p>x</p>` +
		`<script>var dataIslands = dataIslands || {}; dataIslands["app.leaf"] = 2;</script></div>` +
		`<script>var dataIslands = dataIslands || {}; dataIslands["app"] = 1;</script></div>`
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if c := strings.Count(got, `dataIslands["app.leaf"]`); c != 1 {
		t.Errorf("leaf island emitted %d times, want 1", c)
	}
}

func TestSerializeStylesheetOrder(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	root.SetStylesheet("body{}")
	app, _ := root.CreateChild(`<div ui-view></div>`, "app")
	app.SetStylesheet(".app{}")
	leaf, _ := app.CreateChild(`<p>x</p>`, "app.leaf")
	leaf.SetStylesheet(".leaf{}")

	_, css := serialize(t, root, "")
	want := []string{"body{}", ".app{}", ".leaf{}"}
	if strings.Join(css, "|") != strings.Join(want, "|") {
		t.Errorf("css = %v, want %v", css, want)
	}
}

func TestSerializeNilCSSAccumulator(t *testing.T) {
	n := MustNew(`<p>x</p>`, Options{})
	n.SetStylesheet("p{}")

	got, err := n.Serialize("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<p>x</p>" {
		t.Errorf("got %q, want %q", got, "<p>x</p>")
	}
}

func TestSerializeIdempotent(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	app, _ := root.CreateChild(`<section ui-view></section>`, "app")
	app.SetData(map[string]bool{"ok": true})
	app.CreateChild(`<p>leaf</p>`, "app.leaf")

	first, _ := serialize(t, root, "#app")
	second, _ := serialize(t, root, "#app")
	if first != second {
		t.Errorf("outputs differ:\n%q\n%q", first, second)
	}

	var buf strings.Builder
	for c := root.Markup().FirstChild; c != nil; c = c.NextSibling {
		html.Render(&buf, c)
	}
	if buf.String() != `<div ui-view=""></div>` {
		t.Errorf("stored markup mutated: %q", buf.String())
	}
}

func TestSerializeNoContent(t *testing.T) {
	n := MustNew(nil, Options{State: "empty"})

	_, err := n.Serialize("", nil)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
	if !IsNoContent(err) {
		t.Error("IsNoContent should report true")
	}
}

func TestSerializeChildWithoutContent(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	root.CreateChild(nil, "app")

	_, err := root.Serialize("", nil)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
}

func TestSerializeNoPlaceholder(t *testing.T) {
	root := MustNew(`<div class="shell"></div>`, Options{})
	root.CreateChild(`<p>lost</p>`, "app")

	out, err := root.Serialize("", nil)
	if !errors.Is(err, ErrNoPlaceholder) {
		t.Fatalf("err = %v, want ErrNoPlaceholder", err)
	}
	if out != "" {
		t.Errorf("expected no partial output, got %q", out)
	}
}

func TestSerializeTypedNilChild(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	var child *Node
	root.SetChild(child)

	_, err := root.Serialize("", nil)
	if !errors.Is(err, ErrNotAFragment) {
		t.Fatalf("err = %v, want ErrNotAFragment", err)
	}
}

type staticFragment string

func (s staticFragment) Serialize(string, *[]string) (string, error) { return string(s), nil }

func TestSerializeForeignFragment(t *testing.T) {
	root := MustNew(`<main ui-view></main>`, Options{})
	root.SetChild(staticFragment(`<em>external</em>`))

	got, _ := serialize(t, root, "")
	if got != `<main ui-view=""><em>external</em></main>` {
		t.Errorf("got %q", got)
	}
}

func TestCustomPlaceholder(t *testing.T) {
	root := MustNew(`<div data-outlet></div><div ui-view></div>`, Options{Placeholder: "DATA-OUTLET"})
	child, _ := root.CreateChild(`<p>x</p>`, "app")

	if child.Placeholder() != "data-outlet" {
		t.Errorf("child placeholder = %q, want %q", child.Placeholder(), "data-outlet")
	}

	got, _ := serialize(t, root, "")
	if got != `<div data-outlet=""><p>x</p></div><div ui-view=""></div>` {
		t.Errorf("got %q", got)
	}
}

func TestCreateChildPropagatesContext(t *testing.T) {
	type reqCtx struct{ user string }
	rc := &reqCtx{user: "ada"}
	root := MustNew(`<div ui-view></div>`, Options{RequestContext: rc})

	child, _ := root.CreateChild(nil, "app")
	grandchild, _ := child.CreateChild(nil, "app.x")

	if grandchild.RequestContext() != rc {
		t.Error("request context not propagated")
	}
	if child.State() != "app" || grandchild.State() != "app.x" {
		t.Errorf("states = %q, %q", child.State(), grandchild.State())
	}
	if root.Child() != Fragment(child) {
		t.Error("CreateChild did not set the child")
	}
}

func TestSetMarkupValues(t *testing.T) {
	parsed, err := html.ParseFragment(strings.NewReader(`<b>one</b><i>two</i>`), bodyContext())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", `<b>s</b>`, `<b>s</b>`},
		{"bytes", []byte(`<b>b</b>`), `<b>b</b>`},
		{"node slice", parsed, `<b>one</b><i>two</i>`},
		{"element", parsed[0], `<b>one</b>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := MustNew(nil, Options{})
			if err := n.SetMarkup(tt.value); err != nil {
				t.Fatalf("SetMarkup() error: %v", err)
			}
			got, _ := serialize(t, n, "")
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetMarkupDocumentStoredAsIs(t *testing.T) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.TextNode, Data: "plain"})

	n := MustNew(doc, Options{})
	if n.Markup() != doc {
		t.Error("document node should be stored as-is")
	}
}

func TestSetMarkupClears(t *testing.T) {
	n := MustNew(`<p>x</p>`, Options{})
	for _, v := range []any{nil, ""} {
		n.SetMarkup(`<p>x</p>`)
		if err := n.SetMarkup(v); err != nil {
			t.Fatal(err)
		}
		if n.HasMarkup() {
			t.Errorf("SetMarkup(%#v) should clear markup", v)
		}
	}
}

func TestSetMarkupUnsupported(t *testing.T) {
	n := MustNew(nil, Options{})
	err := n.SetMarkup(42)
	if !errors.Is(err, ErrInvalidMarkup) {
		t.Fatalf("err = %v, want ErrInvalidMarkup", err)
	}
}

func TestObservers(t *testing.T) {
	n := MustNew(nil, Options{})

	var markups []any
	var children []Fragment
	renders := 0

	cancelMarkup := n.OnMarkupSet(func(v any) { markups = append(markups, v) })
	n.OnChildSet(func(c Fragment) { children = append(children, c) })
	n.OnPostRender(func(*Node) { renders++ })

	n.SetMarkup(`<div ui-view></div>`)
	n.SetMarkup(nil)
	cancelMarkup()
	n.SetMarkup(`<div ui-view></div>`)

	if len(markups) != 1 || markups[0] != `<div ui-view></div>` {
		t.Errorf("markup notifications = %v, want one raw string", markups)
	}

	child, _ := n.CreateChild(`<p>x</p>`, "app")
	if len(children) != 1 || children[0] != Fragment(child) {
		t.Errorf("child notifications = %v", children)
	}

	n.Serialize("", nil)
	n.Serialize("", nil)
	if renders != 2 {
		t.Errorf("post-render notifications = %d, want 2", renders)
	}
}

func TestPayloadAndOwner(t *testing.T) {
	n := MustNew(nil, Options{})
	n.SetPayload("tmpl")
	n.SetOwner("adapter")

	if n.Payload() != "tmpl" || n.Owner() != "adapter" {
		t.Errorf("payload=%v owner=%v", n.Payload(), n.Owner())
	}
}

func TestTextEscapingPreserved(t *testing.T) {
	root := MustNew(`<div ui-view></div>`, Options{})
	root.CreateChild(`<p>a &amp; b &lt;c&gt;</p>`, "app")

	got, _ := serialize(t, root, "")
	if got != `<div ui-view=""><p>a &amp; b &lt;c&gt;</p></div>` {
		t.Errorf("got %q", got)
	}
}
