// Package pipeline applies one variant's directives to one base URL.
// The step order is fixed: parse, redirect, set, append path, extract
// query pairs, append query pairs, trim, reassemble. Reordering the
// steps changes observable output.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/jacobmealey/urler/internal/component"
	"github.com/jacobmealey/urler/internal/diag"
	"github.com/jacobmealey/urler/internal/directive"
	"github.com/jacobmealey/urler/internal/qpair"
	"github.com/jacobmealey/urler/internal/urlview"
	"github.com/jacobmealey/urler/internal/variant"
)

// Options configure one processing run and are shared across every
// (URL, variant) pair of that run.
type Options struct {
	// Redirect, when set, replaces each successfully parsed base URL
	// before any directive is applied.
	Redirect string
	// AcceptSpace tolerates space and tab in base URLs.
	AcceptSpace bool
}

// Pipeline holds the run configuration and the query-pair buffer,
// which is reset between (URL, variant) runs rather than reallocated.
type Pipeline struct {
	opts  Options
	log   *diag.Logger
	pairs qpair.List
}

// New returns a pipeline reporting non-fatal conditions through log.
func New(opts Options, log *diag.Logger) *Pipeline {
	return &Pipeline{opts: opts, log: log}
}

// ParseError reports a base URL the parser rejected. The caller
// decides whether that is a warning or, under verification, fatal.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s [%s]", e.Err, e.URL)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Apply runs one variant against one base URL and returns the
// resolved handle. A *ParseError means the URL never parsed and
// nothing was applied.
func (p *Pipeline) Apply(base string, v variant.Variant) (*urlview.Handle, error) {
	h, err := urlview.Parse(base, urlview.ParseOptions{
		GuessScheme: true,
		AllowSpace:  p.opts.AcceptSpace,
	})
	if err != nil {
		return nil, &ParseError{URL: base, Err: err}
	}
	if p.opts.Redirect != "" {
		if err := h.Set(component.URL, p.opts.Redirect, urlview.SetOptions{}); err != nil {
			p.log.Warnf("%s [%s]", err, p.opts.Redirect)
		}
	}
	p.run(h, v)
	return h, nil
}

// ApplyEmpty runs one variant against an empty URL state, for
// invocations that build a URL purely out of set directives.
func (p *Pipeline) ApplyEmpty(v variant.Variant) *urlview.Handle {
	h := urlview.New()
	p.run(h, v)
	return h
}

func (p *Pipeline) run(h *urlview.Handle, v variant.Variant) {
	p.applySets(h, v)
	p.appendPaths(h, v)

	p.pairs.Reset()
	if q, ok := h.Get(component.Query, urlview.GetOptions{}); ok {
		p.pairs.Split(q)
	}
	for _, d := range v {
		if a, ok := d.(directive.AppendQuery); ok {
			p.pairs.Add(a.Pair)
		}
	}
	if p.pairs.Dropped() > 0 {
		p.log.Warnf("too many query pairs")
	}
	for _, d := range v {
		if t, ok := d.(directive.TrimQuery); ok {
			p.pairs.MarkDeleted(t.Pattern, t.Wildcard)
		}
	}
	if q := p.pairs.Join(); q != "" {
		if err := h.Set(component.Query, q, urlview.SetOptions{}); err != nil {
			p.log.Warnf("internal problem")
		}
	} else {
		h.Clear(component.Query)
	}
}

// applySets applies the set directives in variant order. An empty
// value clears the component. Failures are reported and skipped; the
// directives were validated at parse time, so a failure here means
// the value itself was rejected.
func (p *Pipeline) applySets(h *urlview.Handle, v variant.Variant) {
	for _, d := range v {
		s, ok := d.(directive.SetComponent)
		if !ok {
			continue
		}
		var err error
		if s.Value == "" {
			err = h.Clear(s.Component)
		} else {
			err = h.Set(s.Component, s.Value, urlview.SetOptions{Encode: s.URLEncode})
		}
		if err != nil {
			p.log.Warnf("could not set the %s component: %s", s.Component, err)
		}
	}
}

// appendPaths applies the append-path directives sequentially: each
// one reads the path the previous one produced, joins with a '/'
// unless one is already there, and writes it back.
func (p *Pipeline) appendPaths(h *urlview.Handle, v variant.Variant) {
	for _, d := range v {
		a, ok := d.(directive.AppendPath)
		if !ok {
			continue
		}
		path, _ := h.Get(component.Path, urlview.GetOptions{})
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}
		if err := h.Set(component.Path, path+a.Segment, urlview.SetOptions{}); err != nil {
			p.log.Warnf("could not append to the path: %s", err)
		}
	}
}
