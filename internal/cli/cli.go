// Package cli parses the urler command line into an invocation the
// processing loop can run, attaching the exit code each mistake maps
// to. Parsing is pure: no file is opened and nothing is printed here.
package cli

import (
	"fmt"
	"strings"

	"github.com/jacobmealey/urler/internal/directive"
)

// Exit codes, one per failure class.
const (
	ExitOK         = 0
	ExitFile       = 1  // a URL file could not be read
	ExitAppend     = 2  // an --append mistake
	ExitMissingArg = 3  // an option misses its argument
	ExitFlag       = 4  // a command line flag mistake
	ExitSet        = 5  // a --set problem
	ExitMem        = 6  // out of memory
	ExitURL        = 7  // could not get a URL out of the set components
	ExitTrim       = 8  // a --trim problem
	ExitBadURL     = 9  // --verify is set and a URL did not parse
	ExitIterate    = 10 // an --iterate mistake
)

// UsageError is a command line mistake plus the exit code it maps to.
type UsageError struct {
	Code int
	Err  error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(code int, format string, args ...interface{}) *UsageError {
	return &UsageError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode returns the exit code an error asks for, defaulting to the
// flag-mistake code.
func ExitCode(err error) int {
	if u, ok := err.(*UsageError); ok {
		return u.Code
	}
	return ExitFlag
}

// Invocation is one parsed command line.
type Invocation struct {
	URLs       []string // bare arguments and --url values, in order
	URLFile    string   // --url-file path, "-" for stdin
	HasURLFile bool

	// Directives in flag order, the iterate directive included.
	Directives []directive.Directive

	Format      string // --get template
	HasFormat   bool
	JSON        bool
	Redirect    string
	Verify      bool
	AcceptSpace bool

	Help    bool
	Version bool
}

// Parse turns arguments (without the program name) into an
// Invocation. Any argument starting with a dash is a flag; everything
// else is a URL. Help and version stop parsing where they stand.
func Parse(args []string) (Invocation, error) {
	var inv Invocation
	hasIterate := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			inv.URLs = append(inv.URLs, arg)
			continue
		}

		switch arg {
		case "-v", "--version":
			inv.Version = true
			return inv, nil
		case "-h", "--help":
			inv.Help = true
			return inv, nil
		case "--json":
			inv.JSON = true
		case "--verify":
			inv.Verify = true
		case "--accept-space":
			inv.AcceptSpace = true
		case "--url":
			value, err := optarg(args, &i, arg)
			if err != nil {
				return inv, err
			}
			inv.URLs = append(inv.URLs, value)
		case "-f", "--url-file":
			value, err := optarg(args, &i, arg)
			if err != nil {
				return inv, err
			}
			if inv.HasURLFile {
				return inv, usageErrorf(ExitFlag, "only one --url-file is supported")
			}
			inv.URLFile = value
			inv.HasURLFile = true
		case "-a", "--append":
			value, err := optarg(args, &i, arg)
			if err != nil {
				return inv, err
			}
			d, err := directive.ParseAppend(value)
			if err != nil {
				return inv, &UsageError{Code: ExitAppend, Err: err}
			}
			inv.Directives = append(inv.Directives, d)
		case "-s", "--set":
			value, err := optarg(args, &i, arg)
			if err != nil {
				return inv, err
			}
			d, err := directive.ParseSet(value)
			if err != nil {
				return inv, &UsageError{Code: ExitSet, Err: err}
			}
			inv.Directives = append(inv.Directives, d)
		case "--trim":
			value, err := optarg(args, &i, arg)
			if err != nil {
				return inv, err
			}
			d, err := directive.ParseTrim(value)
			if err != nil {
				return inv, &UsageError{Code: ExitTrim, Err: err}
			}
			inv.Directives = append(inv.Directives, d)
		case "--iterate":
			value, err := optarg(args, &i, arg)
			if err != nil {
				return inv, err
			}
			if hasIterate {
				return inv, usageErrorf(ExitIterate, "only one --iterate is supported")
			}
			hasIterate = true
			d, err := directive.ParseIterate(value)
			if err != nil {
				return inv, &UsageError{Code: ExitIterate, Err: err}
			}
			inv.Directives = append(inv.Directives, d)
		case "--redirect":
			value, err := optarg(args, &i, arg)
			if err != nil {
				return inv, err
			}
			if inv.Redirect != "" {
				return inv, usageErrorf(ExitFlag, "only one --redirect is supported")
			}
			inv.Redirect = value
		case "-g", "--get":
			value, err := optarg(args, &i, arg)
			if err != nil {
				return inv, err
			}
			if inv.HasFormat {
				return inv, usageErrorf(ExitFlag, "only one --get is supported")
			}
			inv.Format = value
			inv.HasFormat = true
		default:
			return inv, usageErrorf(ExitFlag, "unknown option: %s", arg)
		}
	}
	return inv, nil
}

// optarg consumes the next argument as a flag's value.
func optarg(args []string, i *int, flag string) (string, error) {
	if *i+1 >= len(args) {
		return "", usageErrorf(ExitMissingArg, "missing argument for %s", flag)
	}
	*i++
	return args[*i], nil
}
