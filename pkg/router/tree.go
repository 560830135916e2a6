package router

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// node is a node in the radix tree.
type node struct {
	// segment is the static path segment this node matches
	segment string

	isParam    bool
	isCatchAll bool

	// paramName is the parameter name (without : or *)
	paramName string

	// paramType is "string", "int" or "uuid"
	paramType string

	// state is the state bound to this node; empty for intermediate nodes
	state   string
	pattern string

	children      []*node
	paramChild    *node
	catchAllChild *node
}

func newNode(segment string) *node {
	return &node{segment: segment}
}

// findChild finds a child node with an exact segment match.
func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newNode(segment)
	n.children = append(n.children, child)
	return child
}

// addParamChild returns the parameter child, creating it when absent.
// ok is false if a parameter with another name or type already occupies
// this position.
func (n *node) addParamChild(name, paramType string) (child *node, ok bool) {
	if n.paramChild != nil {
		c := n.paramChild
		return c, c.paramName == name && c.paramType == paramType
	}
	child = newNode("")
	child.isParam = true
	child.paramName = name
	child.paramType = paramType
	n.paramChild = child
	return child, true
}

func (n *node) addCatchAllChild(name string) (child *node, ok bool) {
	if n.catchAllChild != nil {
		return n.catchAllChild, n.catchAllChild.paramName == name
	}
	child = newNode("")
	child.isCatchAll = true
	child.paramName = name
	child.paramType = "string"
	n.catchAllChild = child
	return child, true
}

// insert adds pattern to the tree and returns its terminal node. conflict
// names the first segment that clashes with an existing parameter.
func (n *node) insert(pattern string) (leaf *node, conflict string) {
	current := n
	for _, seg := range splitPath(pattern) {
		var ok bool
		switch {
		case strings.HasPrefix(seg, "*"):
			current, ok = current.addCatchAllChild(seg[1:])
			if !ok {
				return nil, seg
			}
			return current, ""
		case strings.HasPrefix(seg, ":"):
			name, paramType := parseParamSegment(seg)
			current, ok = current.addParamChild(name, paramType)
			if !ok {
				return nil, seg
			}
		default:
			current = current.addChild(seg)
		}
	}
	return current, ""
}

// match finds the node bound to segments, filling params along the way.
func (n *node) match(segments []string, params map[string]string) (*node, bool) {
	if len(segments) == 0 {
		if n.state != "" {
			return n, true
		}
		return nil, false
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(segment); child != nil {
		if found, ok := child.match(remaining, params); ok {
			return found, true
		}
	}

	if p := n.paramChild; p != nil && validParam(segment, p.paramType) {
		params[p.paramName] = segment
		if found, ok := p.match(remaining, params); ok {
			return found, true
		}
		delete(params, p.paramName)
	}

	if c := n.catchAllChild; c != nil && c.state != "" {
		params[c.paramName] = strings.Join(segments, "/")
		return c, true
	}

	return nil, false
}

func validParam(value, paramType string) bool {
	switch paramType {
	case "int":
		_, err := strconv.Atoi(value)
		return err == nil
	case "uuid":
		_, err := uuid.Parse(value)
		return err == nil
	}
	return value != ""
}

// splitPath splits a path into segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// parseParamSegment extracts name and type from a parameter segment.
// Input: ":id" or ":id:int" -> name="id", type="string" or "int"
func parseParamSegment(seg string) (name, paramType string) {
	seg = seg[1:]
	if idx := strings.Index(seg, ":"); idx != -1 {
		return seg[:idx], seg[idx+1:]
	}
	return seg, "string"
}
