// Package export pre-renders states to static HTML documents.
//
// Each Target is rendered through a Renderer, wrapped in a full document
// and stored in a Sink under "<path>/index.html", where path is the URL the
// render settled on. DirSink writes to the local filesystem; S3Sink uploads
// to a bucket.
//
//	exp := &export.Exporter{
//	    Renderer: sr,
//	    Sink:     export.NewDirSink("dist"),
//	    Document: render.Page{Title: "Forum"},
//	}
//	report, err := exp.Export(ctx, export.StaticTargets(routes))
package export
