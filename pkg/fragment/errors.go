package fragment

import "errors"

// Sentinel errors for fragment operations.
var (
	ErrNoContent     = errors.New("fragment: no markup set")
	ErrNotAFragment  = errors.New("fragment: child is not a fragment")
	ErrNoPlaceholder = errors.New("fragment: no placeholder found")
	ErrInvalidMarkup = errors.New("fragment: unsupported markup value")
)

// IsNoPlaceholder reports whether err is a missing-placeholder error.
func IsNoPlaceholder(err error) bool {
	return errors.Is(err, ErrNoPlaceholder)
}

// IsNoContent reports whether err is a missing-markup error.
func IsNoContent(err error) bool {
	return errors.Is(err, ErrNoContent)
}
