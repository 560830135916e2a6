package render

import (
	"fmt"
	"io"
)

// Page contains everything needed for a complete HTML document.
type Page struct {
	Title string

	// Lang defaults to "en".
	Lang string

	// Body is trusted markup, usually a serialized fragment tree.
	Body string

	Meta  []MetaTag
	Links []LinkTag

	// StyleSheets are external stylesheet URLs.
	StyleSheets []string

	// Styles are inline CSS blocks, written in order.
	Styles []string

	// Scripts with Defer or Async go in the head; the rest close the body.
	Scripts []ScriptTag
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Content   string
	Property  string
	HTTPEquiv string
	Charset   string
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string
	Href        string
	Type        string
	Sizes       string
	CrossOrigin string
	Media       string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Type   string
	Defer  bool
	Async  bool
	Module bool   // type="module"
	Inline string // inline script content
}

// Compose returns a copy of p with body as its Body and styles appended
// after p's own inline styles.
func (p Page) Compose(body string, styles []string) Page {
	out := p
	out.Body = body
	out.Styles = append(append([]string(nil), p.Styles...), styles...)
	return out
}

// pageWriter stops writing after the first error.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *pageWriter) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// attr writes ` name="value"` when value is non-empty.
func (p *pageWriter) attr(name, value string) {
	if value != "" {
		p.printf(` %s="%s"`, name, escapeAttr(value))
	}
}

// RenderPage writes a complete HTML document to w.
func RenderPage(w io.Writer, page Page) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	p := &pageWriter{w: w}
	p.write("<!DOCTYPE html>\n")
	p.printf("<html lang=\"%s\">\n", escapeAttr(lang))
	p.head(page)
	p.write("<body>\n")
	p.write(page.Body)
	p.write("\n")
	for _, s := range page.Scripts {
		if !s.Defer && !s.Async {
			p.script(s)
		}
	}
	p.write("</body>\n</html>\n")
	return p.err
}

func (p *pageWriter) head(page Page) {
	p.write("<head>\n")
	p.write(`  <meta charset="utf-8">` + "\n")
	p.write(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")

	if page.Title != "" {
		p.printf("  <title>%s</title>\n", escapeHTML(page.Title))
	}

	for _, m := range page.Meta {
		p.write("  <meta")
		p.attr("charset", m.Charset)
		p.attr("name", m.Name)
		p.attr("property", m.Property)
		p.attr("http-equiv", m.HTTPEquiv)
		p.attr("content", m.Content)
		p.write(">\n")
	}

	for _, l := range page.Links {
		p.write("  <link")
		p.attr("rel", l.Rel)
		p.attr("href", l.Href)
		p.attr("type", l.Type)
		p.attr("sizes", l.Sizes)
		p.attr("crossorigin", l.CrossOrigin)
		p.attr("media", l.Media)
		p.write(">\n")
	}

	for _, href := range page.StyleSheets {
		p.printf("  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href))
	}

	for _, css := range page.Styles {
		p.printf("  <style>%s</style>\n", escapeRawText(css, "style"))
	}

	for _, s := range page.Scripts {
		if s.Defer || s.Async {
			p.script(s)
		}
	}

	p.write("</head>\n")
}

func (p *pageWriter) script(s ScriptTag) {
	p.write("  <script")
	p.attr("src", s.Src)
	if s.Module {
		p.write(` type="module"`)
	} else {
		p.attr("type", s.Type)
	}
	if s.Defer {
		p.write(" defer")
	}
	if s.Async {
		p.write(" async")
	}
	p.write(">")
	p.write(escapeRawText(s.Inline, "script"))
	p.write("</script>\n")
}
