// Package router maps URL paths to state names.
//
// Routes are stored in a radix tree keyed by path segment. Each route
// pattern is a slash-separated list of segments:
//
//	/about            static segment
//	/topics/:id       parameter (string)
//	/users/:id:int    typed parameter (int or uuid)
//	/files/*path      catch-all, consumes the remainder
//
// Matching prefers static segments over parameters and parameters over
// catch-alls, backtracking when a branch fails.
//
//	r := router.New()
//	r.Add("/topics/:id", "app.topics.detail")
//	m, ok := r.Match("/topics/42")
//	// m.State == "app.topics.detail", m.Params["id"] == "42"
//
// Build performs the reverse operation for a state's full route, and
// JoinRoutes concatenates the route fragments of a state chain.
package router
