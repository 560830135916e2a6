// Package errors provides structured, actionable error messages for isoview.
//
// The errors package implements a coded error system that:
//   - Identifies every failure with a stable code (e.g., "E202")
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues
//   - Optionally points at a source location (manifest file, line, column)
//
// # Error Categories
//
// Errors are organized into categories:
//   - render: fragment serialization errors (missing markup, missing placeholder)
//   - routing: state transition errors (unknown state, missing parameter)
//   - config: isoview.json and manifest errors
//   - export: static export errors
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("E202").
//	    WithDetail(`no element or attribute named "ui-view" in state "app"`).
//	    Wrap(fragment.ErrNoPlaceholder)
//
//	fmt.Print(err.Format(false))
//	// Output:
//	// ERROR E202: No placeholder found
//	//
//	//   no element or attribute named "ui-view" in state "app"
//	//
//	//   Hint: Add a <ui-view> tag or a ui-view attribute to the parent markup
//
// Commands report failures through a Printer, which renders the terminal
// form above or one JSON object per line:
//
//	errors.Printer{Out: os.Stderr, Color: true}.Print(err)
//
// Errors wrap the sentinel values exported by the library packages, so
// callers test for a kind with the standard errors.Is.
package errors
