package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jacobmealey/urler/internal/component"
	"github.com/jacobmealey/urler/internal/directive"
)

func TestParse_URLs(t *testing.T) {
	inv, err := Parse([]string{"a.com", "--url", "b.com", "c.com"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"a.com", "b.com", "c.com"}
	if len(inv.URLs) != len(want) {
		t.Fatalf("got %d URLs, want %d", len(inv.URLs), len(want))
	}
	for i, u := range want {
		if inv.URLs[i] != u {
			t.Errorf("URLs[%d] = %q, want %q", i, inv.URLs[i], u)
		}
	}
}

func TestParse_Flags(t *testing.T) {
	inv, err := Parse([]string{
		"--json", "--verify", "--accept-space",
		"--redirect", "https://b.example/",
		"-g", "{host}",
		"-f", "-",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !inv.JSON || !inv.Verify || !inv.AcceptSpace {
		t.Errorf("boolean flags not all set: %+v", inv)
	}
	if inv.Redirect != "https://b.example/" {
		t.Errorf("Redirect = %q", inv.Redirect)
	}
	if !inv.HasFormat || inv.Format != "{host}" {
		t.Errorf("Format = %q (has=%v)", inv.Format, inv.HasFormat)
	}
	if !inv.HasURLFile || inv.URLFile != "-" {
		t.Errorf("URLFile = %q (has=%v)", inv.URLFile, inv.HasURLFile)
	}
}

func TestParse_Directives(t *testing.T) {
	inv, err := Parse([]string{
		"-s", "host=example.com",
		"-a", "path=idx",
		"--trim", "query=utm_*",
		"--iterate", "ports=80 443",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(inv.Directives) != 4 {
		t.Fatalf("got %d directives, want 4", len(inv.Directives))
	}
	set, ok := inv.Directives[0].(directive.SetComponent)
	if !ok || set.Component != component.Host || set.Value != "example.com" {
		t.Errorf("directive 0 = %#v", inv.Directives[0])
	}
	ap, ok := inv.Directives[1].(directive.AppendPath)
	if !ok || ap.Segment != "idx" {
		t.Errorf("directive 1 = %#v", inv.Directives[1])
	}
	tr, ok := inv.Directives[2].(directive.TrimQuery)
	if !ok || tr.Pattern != "utm_" || !tr.Wildcard {
		t.Errorf("directive 2 = %#v", inv.Directives[2])
	}
	it, ok := inv.Directives[3].(directive.IterateComponent)
	if !ok || it.Component != component.Port || len(it.Values) != 2 {
		t.Errorf("directive 3 = %#v", inv.Directives[3])
	}
}

func TestParse_HelpVersionStopParsing(t *testing.T) {
	inv, err := Parse([]string{"-h", "--definitely-not-an-option"})
	if err != nil {
		t.Fatalf("Parse after -h: %v", err)
	}
	if !inv.Help {
		t.Error("Help not set")
	}

	inv, err = Parse([]string{"--version", "--also-not-an-option"})
	if err != nil {
		t.Fatalf("Parse after --version: %v", err)
	}
	if !inv.Version {
		t.Error("Version not set")
	}
}

// Option values are consumed greedily, so a value may look like a flag.
func TestParse_GreedyValue(t *testing.T) {
	inv, err := Parse([]string{"-g", "-s"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if inv.Format != "-s" {
		t.Errorf("Format = %q, want %q", inv.Format, "-s")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{"unknown option", []string{"--bogus"}, ExitFlag, "unknown option: --bogus"},
		{"bare dash", []string{"-"}, ExitFlag, "unknown option: -"},
		{"missing set value", []string{"-s"}, ExitMissingArg, "missing argument for -s"},
		{"missing get value", []string{"--get"}, ExitMissingArg, "missing argument for --get"},
		{"duplicate get", []string{"-g", "{url}", "-g", "{host}"}, ExitFlag, "only one --get is supported"},
		{"duplicate url-file", []string{"-f", "a", "-f", "b"}, ExitFlag, "only one --url-file is supported"},
		{"duplicate redirect", []string{"--redirect", "a", "--redirect", "b"}, ExitFlag, "only one --redirect is supported"},
		{"duplicate iterate", []string{"--iterate", "ports=1 2", "--iterate", "ports=3 4"}, ExitIterate, "only one --iterate is supported"},
		{"bad set", []string{"-s", "nosuch=x"}, ExitSet, "unknown component"},
		{"set url", []string{"-s", "url=https://x/"}, ExitSet, "cannot set the url component"},
		{"bad append", []string{"-a", "host=x"}, ExitAppend, "unsupported append component"},
		{"bad trim", []string{"--trim", "path=x"}, ExitTrim, "unsupported trim component"},
		{"bad iterate", []string{"--iterate", "ports="}, ExitIterate, "missing arguments for iterator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			var usage *UsageError
			if !errors.As(err, &usage) {
				t.Fatalf("error %T is not *UsageError", err)
			}
			if usage.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", usage.Code, tt.wantCode)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_DirectiveErrorsUnwrap(t *testing.T) {
	_, err := Parse([]string{"-s", "nosuch=x"})
	if !errors.Is(err, directive.ErrUnknownComponent) {
		t.Errorf("errors.Is(%v, ErrUnknownComponent) = false", err)
	}
	if ExitCode(err) != ExitSet {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitSet)
	}
}

func TestExitCode_Default(t *testing.T) {
	if got := ExitCode(errors.New("plain")); got != ExitFlag {
		t.Errorf("ExitCode(plain error) = %d, want %d", got, ExitFlag)
	}
}

func TestParse_DashlessArgsAreURLs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("every dashless argument comes back as a URL", prop.ForAll(
		func(names []string) bool {
			inv, err := Parse(names)
			if err != nil {
				return false
			}
			if len(inv.URLs) != len(names) {
				return false
			}
			for i := range names {
				if inv.URLs[i] != names[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(4, gen.Identifier()),
	))

	properties.TestingRun(t)
}
