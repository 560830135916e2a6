package fragment

import (
	"bytes"
	"reflect"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/internal/observe"
)

// DefaultPlaceholder is the tag or attribute name that marks where a child
// level is inserted.
const DefaultPlaceholder = "ui-view"

// Fragment is anything that can be spliced into a parent's placeholder.
type Fragment interface {
	// Serialize renders the fragment and everything below it.
	// placeholderID decorates the fragment's own placeholder ("#id" or
	// ".class"); css, when non-nil, accumulates stylesheets in order.
	Serialize(placeholderID string, css *[]string) (string, error)
}

// Options configures a new Node.
type Options struct {
	// Placeholder is the tag or attribute name of the placeholder.
	// Defaults to DefaultPlaceholder.
	Placeholder string

	// State is the name of the state owning this level. Data islands are
	// labeled with it; a level without a state emits no island.
	State string

	// RequestContext is an opaque caller value propagated to children.
	RequestContext any
}

// Node is one level of a server-rendered page.
type Node struct {
	placeholder    string
	state          string
	requestContext any

	markup     *html.Node
	data       any
	stylesheet string
	child      Fragment
	payload    any
	owner      any

	markupSet  observe.Stream[any]
	childSet   observe.Stream[Fragment]
	postRender observe.Stream[*Node]
}

var _ Fragment = (*Node)(nil)

// New creates a Node and assigns markup to it. markup may be nil.
func New(markup any, opts Options) (*Node, error) {
	placeholder := strings.ToLower(strings.TrimSpace(opts.Placeholder))
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	n := &Node{
		placeholder:    placeholder,
		state:          opts.State,
		requestContext: opts.RequestContext,
	}
	if err := n.SetMarkup(markup); err != nil {
		return nil, err
	}
	return n, nil
}

// MustNew is like New but panics on error. Intended for literals.
func MustNew(markup any, opts Options) *Node {
	n, err := New(markup, opts)
	if err != nil {
		panic(err)
	}
	return n
}

// SetMarkup replaces the backing markup.
//
// nil and "" clear it. A string or []byte is parsed as an HTML fragment in
// body context. An *html.Node of type DocumentNode is stored as the
// container; any other *html.Node, or a []*html.Node, is copied into a new
// container. Markup-set subscribers see the raw value before parsing.
func (n *Node) SetMarkup(value any) error {
	if isEmptyMarkup(value) {
		n.markup = nil
		return nil
	}

	n.markupSet.Emit(value)

	switch v := value.(type) {
	case string:
		tree, err := parse(v)
		if err != nil {
			return err
		}
		n.markup = tree
	case []byte:
		tree, err := parse(string(v))
		if err != nil {
			return err
		}
		n.markup = tree
	case *html.Node:
		if v.Type == html.DocumentNode {
			n.markup = v
			return nil
		}
		container := newContainer()
		container.AppendChild(cloneTree(v))
		n.markup = container
	case []*html.Node:
		container := newContainer()
		for _, c := range v {
			container.AppendChild(cloneTree(c))
		}
		n.markup = container
	default:
		return errors.New("E203").
			WithDetailf("cannot use %T as markup", value).
			Wrap(ErrInvalidMarkup)
	}
	return nil
}

// Markup returns the parsed markup container, or nil.
func (n *Node) Markup() *html.Node { return n.markup }

// HasMarkup reports whether markup has been set.
func (n *Node) HasMarkup() bool { return n.markup != nil }

// CreateChild creates a Node for state with the same placeholder and
// request context, makes it this node's child and returns it.
func (n *Node) CreateChild(markup any, state string) (*Node, error) {
	child, err := New(markup, Options{
		Placeholder:    n.placeholder,
		State:          state,
		RequestContext: n.requestContext,
	})
	if err != nil {
		return nil, err
	}
	n.SetChild(child)
	return child, nil
}

// SetChild replaces the child. Child-set subscribers are notified first.
func (n *Node) SetChild(child Fragment) {
	n.childSet.Emit(child)
	n.child = child
}

// Child returns the child, or nil.
func (n *Node) Child() Fragment { return n.child }

// SetData sets the payload embedded as a data island.
func (n *Node) SetData(data any) { n.data = data }

// Data returns the data island payload.
func (n *Node) Data() any { return n.data }

// SetStylesheet sets CSS collected when the node is serialized.
func (n *Node) SetStylesheet(css string) { n.stylesheet = css }

// Stylesheet returns the node's CSS.
func (n *Node) Stylesheet() string { return n.stylesheet }

// SetPayload stores a request-scoped value such as a template instance.
func (n *Node) SetPayload(v any) { n.payload = v }

// Payload returns the request-scoped value.
func (n *Node) Payload() any { return n.payload }

// SetOwner records the renderer that created the node.
func (n *Node) SetOwner(v any) { n.owner = v }

// Owner returns the renderer that created the node.
func (n *Node) Owner() any { return n.owner }

// State returns the owning state name.
func (n *Node) State() string { return n.state }

// Placeholder returns the placeholder identifier.
func (n *Node) Placeholder() string { return n.placeholder }

// RequestContext returns the caller value propagated from the root.
func (n *Node) RequestContext() any { return n.requestContext }

// OnMarkupSet subscribes to markup assignments.
func (n *Node) OnMarkupSet(fn func(value any)) observe.Cleanup {
	return n.markupSet.Subscribe(fn)
}

// OnChildSet subscribes to child assignments.
func (n *Node) OnChildSet(fn func(child Fragment)) observe.Cleanup {
	return n.childSet.Subscribe(fn)
}

// OnPostRender subscribes to serialization of this node.
func (n *Node) OnPostRender(fn func(*Node)) observe.Cleanup {
	return n.postRender.Subscribe(fn)
}

// Serialize renders the node and its descendants to an HTML string.
func (n *Node) Serialize(placeholderID string, css *[]string) (string, error) {
	tree, err := n.build(placeholderID, css)
	if err != nil {
		return "", err
	}
	return renderChildren(tree)
}

// build returns a detached copy of the markup with the child spliced in.
func (n *Node) build(placeholderID string, css *[]string) (*html.Node, error) {
	if n.markup == nil {
		return nil, errors.New("E200").
			WithDetailf("state %q", n.state).
			Wrap(ErrNoContent)
	}

	n.postRender.Emit(n)

	if css != nil && n.stylesheet != "" {
		*css = append(*css, n.stylesheet)
	}

	tree := cloneTree(n.markup)

	if n.data != nil && n.state != "" {
		script, err := islandNode(n.state, n.data)
		if err != nil {
			return nil, err
		}
		tree.AppendChild(script)
	}

	if n.child == nil {
		return tree, nil
	}
	if isNilFragment(n.child) {
		return nil, errors.New("E201").
			WithDetailf("state %q has child of type %T", n.state, n.child).
			Wrap(ErrNotAFragment)
	}

	view := FindPlaceholder(tree, n.placeholder)
	if view == nil {
		return nil, errors.New("E202").
			WithDetailf("no element or attribute named %q in state %q", n.placeholder, n.state).
			Wrap(ErrNoPlaceholder)
	}
	decorate(view, placeholderID)

	childHTML, err := n.child.Serialize("", css)
	if err != nil {
		return nil, err
	}
	nodes, err := html.ParseFragment(strings.NewReader(childHTML), contextFor(view))
	if err != nil {
		return nil, err
	}
	for _, c := range nodes {
		view.AppendChild(c)
	}

	return tree, nil
}

// decorate tags the placeholder for client-side targeting: "#app" sets
// id="app", ".app" adds class "app". Anything else, including a bare "#"
// or ".", is ignored.
func decorate(view *html.Node, placeholderID string) {
	if len(placeholderID) < 2 {
		return
	}
	value := placeholderID[1:]
	switch placeholderID[0] {
	case '#':
		setAttr(view, "id", value)
	case '.':
		for i, a := range view.Attr {
			if a.Namespace == "" && a.Key == "class" {
				if a.Val == "" {
					view.Attr[i].Val = value
				} else {
					view.Attr[i].Val = a.Val + " " + value
				}
				return
			}
		}
		view.Attr = append(view.Attr, html.Attribute{Key: "class", Val: value})
	}
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func isEmptyMarkup(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	case *html.Node:
		return v == nil
	case []*html.Node:
		return len(v) == 0
	}
	return false
}

func isNilFragment(f Fragment) bool {
	if f == nil {
		return true
	}
	v := reflect.ValueOf(f)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func newContainer() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// contextFor returns a detached element equivalent to view for fragment
// parsing, so the parser applies view's content model.
func contextFor(view *html.Node) *html.Node {
	return &html.Node{
		Type:      html.ElementNode,
		Data:      view.Data,
		DataAtom:  view.DataAtom,
		Namespace: view.Namespace,
	}
}

func parse(markup string) (*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), bodyContext())
	if err != nil {
		return nil, errors.New("E203").WithDetail("parse failed").Wrap(err)
	}
	container := newContainer()
	for _, c := range nodes {
		container.AppendChild(c)
	}
	return container, nil
}

func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneTree(ch))
	}
	return c
}

func renderChildren(container *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
