// Package manifest loads a YAML file describing a site's state tree.
//
// A manifest lists states in any order:
//
//	states:
//	  - name: app
//	    templateFile: templates/layout.html
//	    stylesheet: "body { margin: 0 }"
//	  - name: app.topics
//	    route: /topics/:id
//	    template: <article ui-view></article>
//	    defaultParams: {id: "1"}
//	    data: {title: Topics}
//
// Paths in templateFile and stylesheetFile are relative to the manifest.
// States built from a manifest render their template, publish data as the
// fragment's data island and contribute their stylesheet to the page.
package manifest
