// Package variant expands a directive list into the independent
// per-value transformation lists an iterate directive asks for.
package variant

import (
	"errors"
	"fmt"

	"github.com/jacobmealey/urler/internal/component"
	"github.com/jacobmealey/urler/internal/directive"
)

// ErrMultipleIterate is returned when a directive list carries more
// than one iterate directive.
var ErrMultipleIterate = errors.New("only one iterate is supported")

// ErrDuplicateSet is returned when one variant would set the same
// component twice.
var ErrDuplicateSet = errors.New("a component can only be set once per URL")

// A Variant is one iterate-free directive sequence, applied as a
// whole to each URL. Every variant owns its own directive slice.
type Variant []directive.Directive

// Expand resolves the iterate directive in a list, producing one
// variant per iterated value, in value order. Sets naming the
// iterated component are replaced by the iterated value; every other
// directive is carried into each variant unchanged. Without an
// iterate directive the result is a single variant equal to the
// input.
func Expand(directives []directive.Directive) ([]Variant, error) {
	var iter *directive.IterateComponent
	for _, d := range directives {
		it, ok := d.(directive.IterateComponent)
		if !ok {
			continue
		}
		if iter != nil {
			return nil, ErrMultipleIterate
		}
		iter = &it
	}

	if iter == nil {
		v := Variant(append([]directive.Directive(nil), directives...))
		if err := checkSets(v); err != nil {
			return nil, err
		}
		return []Variant{v}, nil
	}

	variants := make([]Variant, 0, len(iter.Values))
	for _, value := range iter.Values {
		v := make(Variant, 0, len(directives))
		for _, d := range directives {
			switch t := d.(type) {
			case directive.IterateComponent:
				continue
			case directive.SetComponent:
				if t.Component == iter.Component {
					continue
				}
			}
			v = append(v, d)
		}
		v = append(v, directive.SetComponent{
			Component: iter.Component,
			Value:     value,
			URLEncode: true,
		})
		if err := checkSets(v); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

func checkSets(v Variant) error {
	var seen [component.Count]bool
	for _, d := range v {
		s, ok := d.(directive.SetComponent)
		if !ok {
			continue
		}
		if seen[s.Component] {
			return fmt.Errorf("%w (%s)", ErrDuplicateSet, s.Component)
		}
		seen[s.Component] = true
	}
	return nil
}
