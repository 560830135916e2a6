package fragment

import (
	"strings"

	"golang.org/x/net/html"
)

// FindPlaceholder returns the first element under root whose tag name or
// attribute name equals identifier.
//
// Direct children are checked before any subtree is entered; subtrees are
// then searched in document order with the same rule. It returns nil when
// nothing matches.
func FindPlaceholder(root *html.Node, identifier string) *html.Node {
	if root == nil {
		return nil
	}
	identifier = strings.ToLower(identifier)

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if isPlaceholder(c, identifier) {
			return c
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindPlaceholder(c, identifier); found != nil {
			return found
		}
	}
	return nil
}

func isPlaceholder(n *html.Node, identifier string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if n.Data == identifier {
		return true
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == identifier {
			return true
		}
	}
	return false
}
