// Package ssr renders a state to HTML on the server.
//
// Each call to Orchestrator.Render builds a private state router over a
// fresh fragment tree, transitions it to the requested state, and
// serializes the tree once the transition ends. Requests share nothing but
// the state definitions, so an Orchestrator is safe for concurrent use.
//
//	o := ssr.New(ssr.StateList(states), ssr.Options{})
//	res, err := o.Render(ctx, ssr.Request{State: "app.home", PlaceholderID: "#app"})
//	// res.Markup, res.Stylesheets
package ssr
