package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`<a href="x">'&'</a>`, "&lt;a href=&quot;x&quot;&gt;&#39;&amp;&#39;&lt;/a&gt;"},
		{"日本", "日本"},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.in); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	if got := escapeAttr("a\nb\tc\rd\"e"); got != "a&#10;b&#9;c&#13;d&quot;e" {
		t.Errorf("escapeAttr() = %q", got)
	}
}

func TestEscapeRawText(t *testing.T) {
	tests := []struct {
		in, tag, want string
	}{
		{"p{}", "style", "p{}"},
		{"a</style>b", "style", `a<\/style>b`},
		{"a</STYLE>b</style>", "style", `a<\/STYLE>b<\/style>`},
		{"x</script>", "style", "x</script>"},
		{"x</script", "script", `x<\/script`},
	}
	for _, tt := range tests {
		if got := escapeRawText(tt.in, tt.tag); got != tt.want {
			t.Errorf("escapeRawText(%q, %q) = %q, want %q", tt.in, tt.tag, got, tt.want)
		}
	}
}
