package manifest

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/vango-dev/isoview"
	"github.com/vango-dev/isoview/internal/errors"
	"github.com/vango-dev/isoview/pkg/fragment"
	"github.com/vango-dev/isoview/pkg/router"
	"github.com/vango-dev/isoview/pkg/state"
)

// ErrInvalidManifest is wrapped by every validation failure.
var ErrInvalidManifest = stderrors.New("manifest: invalid manifest")

// Entry is one state declaration.
type Entry struct {
	Name           string            `yaml:"name"`
	Route          string            `yaml:"route,omitempty"`
	Template       string            `yaml:"template,omitempty"`
	TemplateFile   string            `yaml:"templateFile,omitempty"`
	Stylesheet     string            `yaml:"stylesheet,omitempty"`
	StylesheetFile string            `yaml:"stylesheetFile,omitempty"`
	Data           any               `yaml:"data,omitempty"`
	DefaultChild   string            `yaml:"defaultChild,omitempty"`
	DefaultParams  map[string]string `yaml:"defaultParams,omitempty"`
}

// Manifest is a parsed state manifest. File references are already read.
type Manifest struct {
	entries []Entry
	byName  map[string]int
}

type file struct {
	States []Entry `yaml:"states"`
}

// Load reads and parses the manifest at path. Validation errors point at
// the offending line of the file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E124").WithDetail(path).Wrap(err)
	}
	return parse(data, filepath.Dir(path), path)
}

// Parse decodes a manifest. Unknown fields are rejected. File references
// are resolved against baseDir.
func Parse(data []byte, baseDir string) (*Manifest, error) {
	return parse(data, baseDir, "")
}

func parse(data []byte, baseDir, path string) (*Manifest, error) {
	src := source{path: path}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		e := errors.New("E123").WithDetail(err.Error()).Wrap(ErrInvalidManifest)
		if line := errorLine(err); line > 0 && path != "" {
			e.WithLocation(path, line, 0)
		}
		return nil, e
	}

	// Positions only; the strict decode above already validated the shape.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err == nil {
		src.entries = stateNodes(&root)
	}

	m := &Manifest{entries: f.States}

	m.byName = make(map[string]int, len(m.entries))
	for i := range m.entries {
		e := &m.entries[i]
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, src.invalid(i, "", "state %d has no name", i+1)
		}
		if _, dup := m.byName[e.Name]; dup {
			return nil, src.invalid(i, "name", "state %q declared twice", e.Name)
		}
		if e.Template != "" && e.TemplateFile != "" {
			return nil, src.invalid(i, "templateFile", "state %q sets both template and templateFile", e.Name)
		}
		if e.Stylesheet != "" && e.StylesheetFile != "" {
			return nil, src.invalid(i, "stylesheetFile", "state %q sets both stylesheet and stylesheetFile", e.Name)
		}
		if err := state.Validate(state.State{Name: e.Name}); err != nil {
			return nil, src.invalid(i, "name", "state %q has an invalid name", e.Name)
		}

		if e.TemplateFile != "" {
			tpl, ferr := readFile(baseDir, e.TemplateFile)
			if ferr != nil {
				return nil, src.at(ferr, i, "templateFile")
			}
			e.Template = tpl
		}
		if e.StylesheetFile != "" {
			css, ferr := readFile(baseDir, e.StylesheetFile)
			if ferr != nil {
				return nil, src.at(ferr, i, "stylesheetFile")
			}
			e.Stylesheet = css
		}
		m.byName[e.Name] = i
	}
	return m, nil
}

// source locates state entries in the manifest file.
type source struct {
	path    string
	entries []*yaml.Node
}

func (s source) invalid(i int, key, format string, args ...any) error {
	return s.at(errors.New("E123").WithDetailf(format, args...).Wrap(ErrInvalidManifest), i, key)
}

// at points err at entry i, or at its key when present.
func (s source) at(err *errors.Error, i int, key string) *errors.Error {
	if s.path == "" || i >= len(s.entries) {
		return err
	}
	n := s.entries[i]
	if k := keyNode(n, key); k != nil {
		n = k
	}
	return err.WithLocation(s.path, n.Line, n.Column)
}

// stateNodes returns the items of the top-level states sequence.
func stateNodes(root *yaml.Node) []*yaml.Node {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	if seq := keyValue(root.Content[0], "states"); seq != nil && seq.Kind == yaml.SequenceNode {
		return seq.Content
	}
	return nil
}

func keyNode(mapping *yaml.Node, key string) *yaml.Node {
	if key == "" || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i]
		}
	}
	return nil
}

func keyValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

var lineRe = regexp.MustCompile(`line (\d+):`)

// errorLine extracts the first line number from a yaml.v3 decode error.
func errorLine(err error) int {
	m := lineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func readFile(baseDir, name string) (string, *errors.Error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.New("E124").WithDetail(path).Wrap(err)
	}
	return string(data), nil
}

// Entries returns the declarations in file order.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Entry returns the declaration for name.
func (m *Manifest) Entry(name string) (Entry, bool) {
	i, ok := m.byName[name]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// States converts the manifest to state definitions.
func (m *Manifest) States() []state.State {
	out := make([]state.State, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.state())
	}
	return out
}

func (e Entry) state() state.State {
	data := e.Data
	stylesheet := e.Stylesheet
	s := state.State{
		Name:          e.Name,
		Route:         e.Route,
		DefaultChild:  e.DefaultChild,
		DefaultParams: e.DefaultParams,
		Data:          e,
		ActivateServer: func(c *state.ActivateContext) error {
			if err := isoview.DefaultActivateServer(c); err != nil {
				return err
			}
			if n, ok := c.Element.(*fragment.Node); ok && stylesheet != "" {
				n.SetStylesheet(stylesheet)
			}
			return nil
		},
	}
	if e.Template != "" {
		s.Template = e.Template
	}
	if data != nil {
		s.Resolve = func(context.Context, map[string]string) (any, error) {
			return data, nil
		}
	}
	return s
}

// Pattern returns the full route pattern of name: the routes of all its
// declared ancestors joined with its own.
func (m *Manifest) Pattern(name string) string {
	var routes []string
	for n := name; n != ""; n = state.ParentName(n) {
		if e, ok := m.Entry(n); ok {
			routes = append(routes, e.Route)
		}
	}
	for i, j := 0, len(routes)-1; i < j; i, j = i+1, j-1 {
		routes[i], routes[j] = routes[j], routes[i]
	}
	return router.JoinRoutes(routes...)
}

// Routes registers every state's full pattern on r. When several states
// share a pattern, the deepest one is bound, and among equally deep states
// the first declared.
func (m *Manifest) Routes(r *router.Router) error {
	owner := make(map[string]string)
	var order []string
	for _, e := range m.entries {
		p := m.Pattern(e.Name)
		cur, seen := owner[p]
		if !seen {
			order = append(order, p)
			owner[p] = e.Name
			continue
		}
		if depth(e.Name) > depth(cur) {
			owner[p] = e.Name
		}
	}
	for _, p := range order {
		if err := r.Add(p, owner[p]); err != nil {
			return errors.New("E123").WithDetailf("state %q", owner[p]).Wrap(err)
		}
	}
	return nil
}

func depth(name string) int { return strings.Count(name, ".") }
