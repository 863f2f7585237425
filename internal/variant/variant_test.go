package variant

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jacobmealey/urler/internal/component"
	"github.com/jacobmealey/urler/internal/directive"
)

func TestExpand_NoIterate(t *testing.T) {
	in := []directive.Directive{
		directive.SetComponent{Component: component.Host, Value: "example.com", URLEncode: true},
		directive.TrimQuery{Pattern: "utm_", Wildcard: true},
	}
	got, err := Expand(in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expand produced %d variants, want 1", len(got))
	}
	if !reflect.DeepEqual([]directive.Directive(got[0]), in) {
		t.Errorf("variant = %+v, want %+v", got[0], in)
	}
}

func TestExpand_EmptyList(t *testing.T) {
	got, err := Expand(nil)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(got) != 1 || len(got[0]) != 0 {
		t.Fatalf("Expand(nil) = %+v, want one empty variant", got)
	}
}

func TestExpand_IterateFanOut(t *testing.T) {
	in := []directive.Directive{
		directive.SetComponent{Component: component.Port, Value: "443", URLEncode: true},
		directive.IterateComponent{Component: component.Host, Values: []string{"a.com", "b.com", "c.com"}},
	}
	got, err := Expand(in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expand produced %d variants, want 3", len(got))
	}
	hosts := []string{"a.com", "b.com", "c.com"}
	for i, v := range got {
		want := Variant{
			directive.SetComponent{Component: component.Port, Value: "443", URLEncode: true},
			directive.SetComponent{Component: component.Host, Value: hosts[i], URLEncode: true},
		}
		if !reflect.DeepEqual(v, want) {
			t.Errorf("variant %d = %+v, want %+v", i, v, want)
		}
	}
}

func TestExpand_IterateReplacesSameComponentSet(t *testing.T) {
	in := []directive.Directive{
		directive.SetComponent{Component: component.Host, Value: "old.com", URLEncode: true},
		directive.IterateComponent{Component: component.Host, Values: []string{"a.com", "b.com"}},
	}
	got, err := Expand(in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expand produced %d variants, want 2", len(got))
	}
	for i, v := range got {
		if len(v) != 1 {
			t.Fatalf("variant %d has %d directives, want 1: %+v", i, len(v), v)
		}
		s := v[0].(directive.SetComponent)
		if s.Value == "old.com" {
			t.Errorf("variant %d kept the replaced host set", i)
		}
	}
}

func TestExpand_CarriesNonSetDirectives(t *testing.T) {
	in := []directive.Directive{
		directive.AppendPath{Segment: "index.html"},
		directive.IterateComponent{Component: component.Scheme, Values: []string{"http", "https"}},
		directive.TrimQuery{Pattern: "x", Wildcard: false},
	}
	got, err := Expand(in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	for i, v := range got {
		want := Variant{
			directive.AppendPath{Segment: "index.html"},
			directive.TrimQuery{Pattern: "x", Wildcard: false},
			directive.SetComponent{Component: component.Scheme, Value: in[1].(directive.IterateComponent).Values[i], URLEncode: true},
		}
		if !reflect.DeepEqual(v, want) {
			t.Errorf("variant %d = %+v, want %+v", i, v, want)
		}
	}
}

func TestExpand_VariantsDoNotAlias(t *testing.T) {
	in := []directive.Directive{
		directive.SetComponent{Component: component.Port, Value: "443", URLEncode: true},
		directive.IterateComponent{Component: component.Host, Values: []string{"a.com", "b.com"}},
	}
	got, err := Expand(in)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	got[0][0] = directive.SetComponent{Component: component.Port, Value: "80", URLEncode: true}
	if got[1][0].(directive.SetComponent).Value != "443" {
		t.Error("mutating one variant leaked into another")
	}
}

func TestExpand_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   []directive.Directive
		want error
	}{
		{
			name: "two iterates",
			in: []directive.Directive{
				directive.IterateComponent{Component: component.Host, Values: []string{"a.com"}},
				directive.IterateComponent{Component: component.Port, Values: []string{"80"}},
			},
			want: ErrMultipleIterate,
		},
		{
			name: "duplicate set",
			in: []directive.Directive{
				directive.SetComponent{Component: component.Host, Value: "a.com", URLEncode: true},
				directive.SetComponent{Component: component.Host, Value: "b.com", URLEncode: true},
			},
			want: ErrDuplicateSet,
		},
		{
			name: "duplicate set inside iterated variant",
			in: []directive.Directive{
				directive.SetComponent{Component: component.Port, Value: "80", URLEncode: true},
				directive.SetComponent{Component: component.Port, Value: "443", URLEncode: true},
				directive.IterateComponent{Component: component.Host, Values: []string{"a.com"}},
			},
			want: ErrDuplicateSet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expand err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExpand_FanOutLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("one variant per value, synthesized sets in value order", prop.ForAll(
		func(values []string) bool {
			in := []directive.Directive{
				directive.TrimQuery{Pattern: "x", Wildcard: false},
				directive.IterateComponent{Component: component.Host, Values: values},
			}
			got, err := Expand(in)
			if err != nil || len(got) != len(values) {
				return false
			}
			for i, v := range got {
				last, ok := v[len(v)-1].(directive.SetComponent)
				if !ok || last.Component != component.Host || last.Value != values[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(4, gen.Identifier()),
	))

	properties.TestingRun(t)
}
