// Command urler transforms URLs: parse, rewrite components, trim
// query pairs, and print the result as plain text, a template
// expansion, or JSON.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jacobmealey/urler/internal/cli"
	"github.com/jacobmealey/urler/internal/component"
	"github.com/jacobmealey/urler/internal/diag"
	"github.com/jacobmealey/urler/internal/pipeline"
	"github.com/jacobmealey/urler/internal/render"
	"github.com/jacobmealey/urler/internal/urlview"
	"github.com/jacobmealey/urler/internal/variant"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run drives one invocation end to end and returns the process exit
// code. It is separated from main() to enable testing.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log := diag.New(stderr)

	inv, err := cli.Parse(args)
	if err != nil {
		log.Errorf("%s", err)
		return cli.ExitCode(err)
	}
	if inv.Help {
		usage(stderr)
		return 1
	}
	if inv.Version {
		fmt.Fprintf(stdout, "%s version %s %s\n", diag.Program, version, runtime.Version())
		return cli.ExitOK
	}

	variants, err := variant.Expand(inv.Directives)
	if err != nil {
		log.Errorf("%s", err)
		if errors.Is(err, variant.ErrMultipleIterate) {
			return cli.ExitIterate
		}
		return cli.ExitSet
	}

	proc := &processor{
		pipe: pipeline.New(pipeline.Options{
			Redirect:    inv.Redirect,
			AcceptSpace: inv.AcceptSpace,
		}, log),
		log:      log,
		out:      stdout,
		variants: variants,
		verify:   inv.Verify,
		format:   inv.Format,
		template: inv.HasFormat,
	}
	if inv.JSON {
		proc.json = &render.JSON{}
		proc.json.Begin(stdout)
	}

	switch {
	case inv.HasURLFile:
		in := stdin
		if inv.URLFile != "-" {
			f, err := os.Open(inv.URLFile)
			if err != nil {
				log.Errorf("--url-file %s not found", inv.URLFile)
				return cli.ExitFile
			}
			defer f.Close()
			in = f
		}
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			line := strings.TrimSuffix(sc.Text(), "\r")
			if line == "" {
				continue
			}
			if !proc.url(line) {
				return proc.status
			}
		}
		if err := sc.Err(); err != nil {
			log.Errorf("reading --url-file %s: %s", inv.URLFile, err)
			return cli.ExitFile
		}
	case len(inv.URLs) > 0:
		for _, u := range inv.URLs {
			if !proc.url(u) {
				return proc.status
			}
		}
	default:
		// No URL at all: apply the directives to an empty handle so
		// pure --set invocations still build something.
		proc.empty()
	}

	if proc.json != nil {
		proc.json.End(stdout)
	}
	return proc.status
}

// processor fans each base URL out across the expanded variants and
// renders every result.
type processor struct {
	pipe     *pipeline.Pipeline
	log      *diag.Logger
	out      io.Writer
	variants []variant.Variant
	verify   bool
	format   string
	template bool
	json     *render.JSON
	status   int
}

// url runs one base URL through every variant. The false return means
// stop the whole batch, which only verify mode asks for.
func (p *processor) url(base string) bool {
	for _, v := range p.variants {
		h, err := p.pipe.Apply(base, v)
		if err != nil {
			if p.verify {
				p.log.Errorf("%s", err)
				p.status = cli.ExitBadURL
				return false
			}
			p.log.Warnf("%s", err)
			continue
		}
		p.render(h)
	}
	return true
}

func (p *processor) empty() {
	for _, v := range p.variants {
		p.render(p.pipe.ApplyEmpty(v))
	}
}

func (p *processor) render(h *urlview.Handle) {
	switch {
	case p.json != nil:
		p.json.Write(p.out, h)
	case p.template:
		render.Template(p.out, p.format, h)
	default:
		if err := render.Plain(p.out, h); err != nil {
			p.log.Errorf("not enough input for a URL")
			p.status = cli.ExitURL
		}
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [options] [URL]\n", diag.Program)
	fmt.Fprint(w, "  -a, --append [component]=[data]  - append data to component\n"+
		"      --accept-space               - give in to this URL abuse\n"+
		"  -f, --url-file [file/-]          - read URLs from file or stdin\n"+
		"  -g, --get [{component}s]         - output component(s)\n"+
		"  -h, --help                       - this help\n"+
		"      --iterate [component]=[list] - create one output per listed value\n"+
		"      --json                       - output URL as JSON\n"+
		"      --redirect [URL]             - redirect to this\n"+
		"  -s, --set [component]=[data]     - set component content\n"+
		"      --trim [component]=[what]    - trim component\n"+
		"      --url [URL]                  - URL to work with\n"+
		"  -v, --version                    - show version\n"+
		"      --verify                     - return error on (first) bad URL\n")
	fmt.Fprintf(w, " URL COMPONENTS:\n  %s\n", strings.Join(component.Names(), ", "))
}
