// Package directive models the transformations a single invocation
// requests: set a component, append to the path or query, trim query
// pairs, or iterate a component over several values. Directives are
// parsed once from their text form and immutable afterwards.
package directive

import (
	"github.com/jacobmealey/urler/internal/component"
)

// Directive is one parsed transformation request.
type Directive interface {
	isDirective()
}

// SetComponent assigns a value to one URL component. URLEncode is
// false only when the directive text marked the value raw with a
// trailing colon on the component name. An empty Value clears the
// component instead of storing an empty string.
type SetComponent struct {
	Component component.Component
	Value     string
	URLEncode bool
}

func (SetComponent) isDirective() {}

// AppendPath adds one path segment, already percent-encoded.
type AppendPath struct {
	Segment string
}

func (AppendPath) isDirective() {}

// AppendQuery adds one query pair, name and value already
// percent-encoded on each side of the first '='.
type AppendQuery struct {
	Pair string
}

func (AppendQuery) isDirective() {}

// TrimQuery removes query pairs whose name matches Pattern. With
// Wildcard set the match is a prefix match; the trailing '*' is
// stripped from the stored pattern.
type TrimQuery struct {
	Pattern  string
	Wildcard bool
}

func (TrimQuery) isDirective() {}

// IterateComponent fans one invocation out into a variant per value.
type IterateComponent struct {
	Component component.Component
	Values    []string
}

func (IterateComponent) isDirective() {}
