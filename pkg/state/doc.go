// Package state implements a hierarchical state router.
//
// States form a tree by name: "app.topics" is the child of "app". A
// transition to a state activates the whole chain from the top-level
// ancestor down to the target (extended through DefaultChild), rendering
// each level into the element produced by its parent.
//
// Rendering is delegated to a Renderer, so the same state definitions can
// drive a browser DOM or a server-side fragment tree. The router never
// reads global state: the active state is passed to the Renderer in each
// RenderInfo.
//
// Lifecycle of one transition:
//
//	change-start
//	destroy states that are no longer part of the chain (deepest first)
//	reset kept states whose route parameters changed
//	for each new state: resolve, before-create, render, after-create
//	activate created and reset states (parent first)
//	write the location
//	change-end
//
// Any failure emits state-error with a *TransitionError and aborts.
package state
