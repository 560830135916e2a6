// Package isoview runs one set of state definitions in the browser and on
// the server.
//
// On the server, each render builds a private state router over a tree of
// HTML fragments and returns the serialized markup plus the CSS collected
// from every level. In the browser (GOOS=js, or ISOVIEW_BROWSER set) the
// same calls drive a long-lived router over the caller's renderer.
//
//	sr := isoview.New(nil, nil, isoview.Config{})
//	sr.AddState(state.State{Name: "app", Template: `<main ui-view></main>`})
//	sr.AddState(state.State{Name: "app.home", Route: "/", Template: `<h1>Home</h1>`})
//
//	res, err := sr.RenderToHTML(ctx, "app.home", nil, nil, nil)
//	// res.Markup == `<div ui-view=""><main ui-view=""><h1>Home</h1></main></div>`
package isoview
