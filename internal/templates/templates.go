package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/isoview/internal/config"
	"github.com/vango-dev/isoview/internal/errors"
)

// Config contains template variables.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Placeholder is the placeholder tag or attribute name.
	Placeholder string
}

// Template is a starter project.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files maps relative paths to text/template sources.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"forum":   forumTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E142").WithDetail("Template '" + name + "' not found")
	}
	return tmpl, nil
}

// List returns all template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template into dir. Unless overwrite is set, it fails
// when dir already holds an isoview.json.
func (t *Template) Create(dir string, cfg Config, overwrite bool) error {
	if cfg.Placeholder == "" {
		cfg.Placeholder = config.DefaultPlaceholder
	}
	if !overwrite && config.Exists(dir) {
		return errors.New("E143").WithDetail(filepath.Join(dir, config.ConfigFileName))
	}

	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, relPath := range paths {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

const projectConfig = `{
  "name": "{{.ProjectName}}",
  "placeholder": "{{.Placeholder}}",
  "manifest": "states.yaml",
  "document": {
    "title": "{{.ProjectName}}",
    "lang": "en"
  },
  "serve": {
    "port": 3000
  },
  "export": {
    "output": "dist"
  }
}
`

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A layout state and a home page",
		Files: map[string]string{
			"isoview.json": projectConfig,
			"states.yaml": `states:
  - name: app
    templateFile: templates/layout.html
  - name: app.home
    template: <h1>Welcome to {{.ProjectName}}</h1>
`,
			"templates/layout.html": `<header>{{.ProjectName}}</header>
<main {{.Placeholder}}></main>
`,
		},
	}
}

func forumTemplate() *Template {
	return &Template{
		Name:        "forum",
		Description: "Nested states with route parameters, data islands and stylesheets",
		Files: map[string]string{
			"isoview.json": projectConfig,
			"states.yaml": `states:
  - name: app
    templateFile: templates/layout.html
    stylesheetFile: styles/site.css
  - name: app.home
    template: <h1>{{.ProjectName}}</h1>
  - name: app.topics
    route: /topics
    templateFile: templates/topics.html
    stylesheetFile: styles/topics.css
    defaultChild: list
  - name: app.topics.list
    template: <p>Pick a topic.</p>
  - name: app.topics.detail
    route: /:id
    template: <article>Topic</article>
    data:
      replies: 0
`,
			"templates/layout.html": `<nav><a href="/">Home</a> <a href="/topics">Topics</a></nav>
<main {{.Placeholder}}></main>
`,
			"templates/topics.html": `<section class="topics">
  <h2>Topics</h2>
  <div {{.Placeholder}}></div>
</section>
`,
			"styles/site.css": `body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 48rem; }
`,
			"styles/topics.css": `.topics h2 { border-bottom: 1px solid #ddd; }
`,
		},
	}
}
