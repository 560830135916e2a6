// Package server serves rendered states over HTTP.
//
// Every GET path is canonicalized, matched against a route table and
// rendered to a complete HTML document. Non-canonical paths are redirected
// with 308 Permanent Redirect; paths without a route get 404. Prometheus
// metrics are exposed at /metrics when enabled.
//
//	srv := server.New(server.Config{
//	    Address:  ":3000",
//	    Renderer: sr,
//	    Routes:   routes,
//	    Document: render.Page{Title: "Forum"},
//	    Metrics:  true,
//	})
//	log.Fatal(srv.Run())
package server
