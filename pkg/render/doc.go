// Package render connects the state router to server-side fragments.
//
// Adapter is a state.Renderer that builds a fragment.Node tree: each new
// state becomes a child of the node its parent rendered. Markup is not
// produced here; activation hooks fill it in, typically through
// ApplyTemplate.
//
//	adapter := render.NewAdapter(render.AdapterOptions{
//		TemplateConstructor: render.Templ(func(ctx context.Context, info state.RenderInfo) templ.Component {
//			return views.ForState(info.State.Name)
//		}),
//	})
//
// RenderPage wraps serialized markup and its collected stylesheets in a
// complete HTML document.
package render
