// Package fragment assembles server-rendered pages out of nested markup levels.
//
// A Node owns one level of a page: a parsed HTML fragment, an optional data
// payload for client rehydration, an optional stylesheet, and at most one
// child. The child's output is spliced into the first placeholder found in
// the parent's markup. A placeholder is an element whose tag name, or one of
// whose attribute names, equals the configured identifier ("ui-view" by
// default):
//
//	<ui-view></ui-view>
//	<main ui-view></main>
//
// # Serialization
//
// Serialize walks the chain depth first. Each level:
//
//   - appends its stylesheet to the CSS accumulator (parent before child)
//   - appends a data island script when it carries data and a state name
//   - locates its placeholder and splices the child's serialized markup
//
// The stored markup is never modified: every call works on a copy, so
// serializing the same chain twice yields identical output.
//
// # Data Islands
//
// A level with data emits, at its own level:
//
//	<script>var dataIslands = dataIslands || {}; dataIslands["app.home"] = {"a":1};</script>
//
// # Usage
//
//	root := fragment.MustNew(`<div ui-view></div>`, fragment.Options{})
//	child, _ := root.CreateChild(`<p>hi</p>`, "app")
//	child.SetData(map[string]int{"a": 1})
//
//	var css []string
//	html, err := root.Serialize("#app", &css)
package fragment
