package router

import (
	"errors"
	"net/url"
	"strings"
)

// Path canonicalization errors.
var (
	ErrBackslashInPath       = errors.New("router: path contains backslash")
	ErrNullByteInPath        = errors.New("router: path contains null byte")
	ErrInvalidPercentEscape  = errors.New("router: invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("router: path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("router: encoded slash in parameter segment")
)

// Canonicalize normalizes a request path before matching.
//
// Repeated slashes collapse, "." segments are dropped and ".." segments are
// resolved. A trailing slash is removed except for "/". Any query string is
// discarded. Backslashes, NUL bytes, malformed percent escapes and ".." past
// the root are rejected.
func Canonicalize(input string) (string, error) {
	path, _, _ := strings.Cut(input, "?")
	if path == "" {
		return "/", nil
	}

	if strings.Contains(path, "\\") {
		return "", ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return "", err
		}
	}

	var out []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), nil
}

func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// decodeSegments unescapes each segment of a canonical path. An encoded
// slash is rejected so a parameter can never span two segments.
func decodeSegments(path string) ([]string, error) {
	raw := splitPath(path)
	out := make([]string, 0, len(raw))
	for _, seg := range raw {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrInvalidPercentEscape
		}
		if strings.Contains(decoded, "/") {
			return nil, ErrEncodedSlashInSegment
		}
		out = append(out, decoded)
	}
	return out, nil
}
