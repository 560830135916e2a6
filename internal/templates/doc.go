// Package templates provides starter projects for isoview init.
//
// # Available Templates
//
//   - minimal: one layout state and a home page
//   - forum: nested states with route parameters, data and stylesheets
//
// # Usage
//
//	tmpl, err := templates.Get("forum")
//	if err != nil {
//	    return err
//	}
//	err = tmpl.Create(dir, templates.Config{ProjectName: "forum"})
//
// # Template Variables
//
//	{{.ProjectName}}  - Name of the project
//	{{.Placeholder}}  - Placeholder tag or attribute (default "ui-view")
package templates
