package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes text for HTML content.
func escapeHTML(s string) string { return textEscaper.Replace(s) }

// escapeAttr escapes text for a quoted attribute value, including
// whitespace that would otherwise be normalized.
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// escapeRawText prevents content from closing the raw-text element it is
// written into.
func escapeRawText(s, tag string) string {
	closing := "</" + tag
	if !strings.Contains(strings.ToLower(s), closing) {
		return s
	}
	var b strings.Builder
	lower := strings.ToLower(s)
	for {
		i := strings.Index(lower, closing)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(`<\/`)
		s = s[i+2:]
		lower = lower[i+2:]
	}
}
