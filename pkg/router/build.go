package router

import (
	"net/url"
	"strings"
)

// ParamNames returns the parameter names of pattern in order.
func ParamNames(pattern string) []string {
	var names []string
	for _, seg := range splitPath(pattern) {
		switch {
		case strings.HasPrefix(seg, ":"):
			name, _ := parseParamSegment(seg)
			names = append(names, name)
		case strings.HasPrefix(seg, "*"):
			names = append(names, seg[1:])
		}
	}
	return names
}

// Build substitutes params into pattern. Parameter values are path-escaped;
// catch-all values keep their slashes. Params not consumed by the pattern
// are returned as leftover, or nil if there are none. A missing parameter
// yields an empty segment, which is dropped.
func Build(pattern string, params map[string]string) (path string, leftover map[string]string) {
	used := make(map[string]bool)
	var out []string

	for _, seg := range splitPath(pattern) {
		switch {
		case strings.HasPrefix(seg, ":"):
			name, _ := parseParamSegment(seg)
			used[name] = true
			if v := params[name]; v != "" {
				out = append(out, url.PathEscape(v))
			}
		case strings.HasPrefix(seg, "*"):
			name := seg[1:]
			used[name] = true
			for _, part := range splitPath(params[name]) {
				out = append(out, url.PathEscape(part))
			}
		default:
			out = append(out, seg)
		}
	}

	for k, v := range params {
		if used[k] {
			continue
		}
		if leftover == nil {
			leftover = make(map[string]string)
		}
		leftover[k] = v
	}

	return "/" + strings.Join(out, "/"), leftover
}

// JoinRoutes concatenates route fragments into one pattern.
// Empty fragments are skipped; the result always starts with "/".
func JoinRoutes(routes ...string) string {
	var segs []string
	for _, r := range routes {
		segs = append(segs, splitPath(r)...)
	}
	return "/" + strings.Join(segs, "/")
}

// WithQuery appends params as a sorted query string.
func WithQuery(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}
	q := make(url.Values, len(params))
	for k, v := range params {
		q.Set(k, v)
	}
	return path + "?" + q.Encode()
}
