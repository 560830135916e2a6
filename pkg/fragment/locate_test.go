package fragment

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseForTest(t *testing.T, markup string) *html.Node {
	t.Helper()
	tree, err := parse(markup)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func idOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == "id" {
			return a.Val
		}
	}
	return ""
}

func TestFindPlaceholder(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		id     string
		want   string
	}{
		{
			name:   "tag",
			markup: `<ui-view id="t"></ui-view>`,
			id:     "ui-view",
			want:   "t",
		},
		{
			name:   "attribute",
			markup: `<div id="a" ui-view></div>`,
			id:     "ui-view",
			want:   "a",
		},
		{
			name:   "direct child before deeper match",
			markup: `<section><div id="deep" ui-view></div></section><div id="shallow" ui-view></div>`,
			id:     "ui-view",
			want:   "shallow",
		},
		{
			name:   "nested only",
			markup: `<main><article><div id="inner" ui-view></div></article></main>`,
			id:     "ui-view",
			want:   "inner",
		},
		{
			name:   "first subtree wins",
			markup: `<main><div id="one" ui-view></div></main><aside><div id="two" ui-view></div></aside>`,
			id:     "ui-view",
			want:   "one",
		},
		{
			name:   "first direct match wins",
			markup: `<div id="x1" ui-view></div><div id="x2" ui-view></div>`,
			id:     "ui-view",
			want:   "x1",
		},
		{
			name:   "custom identifier",
			markup: `<div id="no" ui-view></div><div id="yes" outlet></div>`,
			id:     "outlet",
			want:   "yes",
		},
		{
			name:   "case insensitive identifier",
			markup: `<div id="c" UI-VIEW></div>`,
			id:     "Ui-View",
			want:   "c",
		},
		{
			name:   "missing",
			markup: `<div><p>nothing</p></div>`,
			id:     "ui-view",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindPlaceholder(parseForTest(t, tt.markup), tt.id)
			if idOf(got) != tt.want {
				t.Errorf("FindPlaceholder() id = %q, want %q", idOf(got), tt.want)
			}
			if tt.want == "" && got != nil {
				t.Errorf("expected nil, got %v", got.Data)
			}
		})
	}
}

func TestFindPlaceholderIgnoresText(t *testing.T) {
	tree := parseForTest(t, `ui-view text only`)
	if got := FindPlaceholder(tree, "ui-view"); got != nil {
		t.Errorf("text nodes must not match, got %v", got)
	}
}

func TestFindPlaceholderNilRoot(t *testing.T) {
	if FindPlaceholder(nil, "ui-view") != nil {
		t.Error("nil root should return nil")
	}
}

func TestFindPlaceholderDeepChain(t *testing.T) {
	markup := strings.Repeat("<div>", 20) + `<span id="deep" ui-view></span>` + strings.Repeat("</div>", 20)
	if got := idOf(FindPlaceholder(parseForTest(t, markup), "ui-view")); got != "deep" {
		t.Errorf("got %q, want %q", got, "deep")
	}
}
