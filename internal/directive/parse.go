package directive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacobmealey/urler/internal/component"
	"github.com/jacobmealey/urler/internal/urlview"
)

// ErrMalformedPair is returned when directive text lacks the
// [component]=[data] shape.
var ErrMalformedPair = errors.New("invalid syntax")

// ErrUnknownComponent is returned when the name before '=' is not in
// the component table.
var ErrUnknownComponent = errors.New("unknown component")

// ErrBadSetTarget is returned for a set naming the url
// pseudo-component, which can only be read whole, never assigned.
var ErrBadSetTarget = errors.New("cannot set the url component")

// ErrUnsupportedAppend is returned for an append naming a component
// other than path or query.
var ErrUnsupportedAppend = errors.New("unsupported append component")

// ErrUnsupportedTrim is returned for a trim naming a component other
// than query.
var ErrUnsupportedTrim = errors.New("unsupported trim component")

// ErrMissingIterateArgs is returned when iterate text is not one of
// the plural keys followed by a non-empty value list.
var ErrMissingIterateArgs = errors.New("missing arguments for iterator")

// splitPair splits [component]=[data] directive text. The '=' must
// sit after at least one name character.
func splitPair(text string) (string, string, error) {
	eq := strings.IndexByte(text, '=')
	if eq <= 0 {
		return "", "", fmt.Errorf("%w: %s", ErrMalformedPair, text)
	}
	return text[:eq], text[eq+1:], nil
}

// ParseSet parses [component]=[value] or [component]:=[value] text.
// The colon form stores the value raw instead of encode-on-set.
func ParseSet(text string) (SetComponent, error) {
	name, value, err := splitPair(text)
	if err != nil {
		return SetComponent{}, err
	}
	urlencode := true
	if strings.HasSuffix(name, ":") {
		urlencode = false
		name = name[:len(name)-1]
	}
	c, ok := component.Lookup(name)
	if !ok {
		return SetComponent{}, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	if c == component.URL {
		return SetComponent{}, fmt.Errorf("%w: %s", ErrBadSetTarget, text)
	}
	return SetComponent{Component: c, Value: value, URLEncode: urlencode}, nil
}

// ParseAppend parses path=[segment] or query=[pair] text. The data is
// percent-encoded here so the pipeline can splice it in verbatim; a
// query pair is encoded on each side of its first '=' separately.
func ParseAppend(text string) (Directive, error) {
	name, value, err := splitPair(text)
	if err != nil {
		return nil, err
	}
	c, ok := component.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	switch c {
	case component.Path:
		return AppendPath{Segment: urlview.Escape(value)}, nil
	case component.Query:
		return AppendQuery{Pair: encodePair(value)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAppend, text)
	}
}

func encodePair(pair string) string {
	if eq := strings.IndexByte(pair, '='); eq >= 0 {
		return urlview.Escape(pair[:eq]) + "=" + urlview.Escape(pair[eq+1:])
	}
	return urlview.Escape(pair)
}

// ParseTrim parses query=[pattern] text. A pattern ending in '*'
// becomes a prefix match with the asterisk stripped.
func ParseTrim(text string) (TrimQuery, error) {
	name, pattern, err := splitPair(text)
	if err != nil {
		return TrimQuery{}, err
	}
	c, ok := component.Lookup(name)
	if !ok {
		return TrimQuery{}, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	if c != component.Query {
		return TrimQuery{}, fmt.Errorf("%w: %s", ErrUnsupportedTrim, text)
	}
	wildcard := strings.HasSuffix(pattern, "*")
	if wildcard {
		pattern = pattern[:len(pattern)-1]
	}
	return TrimQuery{Pattern: pattern, Wildcard: wildcard}, nil
}

// iterateKeys maps the plural iterate keys to their components. Only
// these three components can be iterated.
var iterateKeys = map[string]component.Component{
	"hosts":   component.Host,
	"ports":   component.Port,
	"schemes": component.Scheme,
}

// ParseIterate parses hosts=[v1 v2 ...], ports=... or schemes=...
// text into an iterate directive. Values are whitespace-separated and
// at least one is required.
func ParseIterate(text string) (IterateComponent, error) {
	eq := strings.IndexByte(text, '=')
	if eq <= 0 {
		return IterateComponent{}, fmt.Errorf("%w: %s", ErrMissingIterateArgs, text)
	}
	c, ok := iterateKeys[strings.ToLower(text[:eq])]
	if !ok {
		return IterateComponent{}, fmt.Errorf("%w: %s", ErrMissingIterateArgs, text)
	}
	values := strings.Fields(text[eq+1:])
	if len(values) == 0 {
		return IterateComponent{}, fmt.Errorf("%w: %s", ErrMissingIterateArgs, text)
	}
	return IterateComponent{Component: c, Values: values}, nil
}
