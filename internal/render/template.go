package render

import (
	"io"
	"strings"

	"github.com/jacobmealey/urler/internal/component"
	"github.com/jacobmealey/urler/internal/urlview"
)

// Template renders one URL through a format string and writes the
// result plus a trailing newline.
//
// "{{" and "}}" emit literal braces. "{name}" emits a component
// decoded, "{:name}" emits it in wire form; an absent or unknown
// component emits nothing. "\r", "\n" and "\t" are translated, any
// other backslash pair is copied through. An unterminated '{' ends
// the scan and drops the dangling text.
func Template(w io.Writer, format string, h *urlview.Handle) {
	s := templateScanner{format: format, handle: h}
	io.WriteString(w, s.render())
}

type templateScanner struct {
	format string
	handle *urlview.Handle
	pos    int
	out    strings.Builder
}

func (s *templateScanner) peek() byte {
	if s.pos >= len(s.format) {
		return 0
	}
	return s.format[s.pos]
}

func (s *templateScanner) peekNext() byte {
	if s.pos+1 >= len(s.format) {
		return 0
	}
	return s.format[s.pos+1]
}

func (s *templateScanner) advance(n int) {
	s.pos += n
}

func (s *templateScanner) render() string {
	for s.pos < len(s.format) {
		switch {
		case s.peek() == '{':
			if s.peekNext() == '{' {
				s.out.WriteByte('{')
				s.advance(2)
				continue
			}
			if !s.placeholder() {
				// no closing brace: drop everything from here on
				s.pos = len(s.format)
			}
		case s.peek() == '}' && s.peekNext() == '}':
			s.out.WriteByte('}')
			s.advance(2)
		case s.peek() == '\\' && s.pos+1 < len(s.format):
			s.escape()
		default:
			s.out.WriteByte(s.peek())
			s.advance(1)
		}
	}
	s.out.WriteByte('\n')
	return s.out.String()
}

// placeholder consumes "{name}" or "{:name}" and emits the named
// component. It reports false when the closing brace is missing.
func (s *templateScanner) placeholder() bool {
	end := strings.IndexByte(s.format[s.pos:], '}')
	if end < 0 {
		return false
	}
	name := s.format[s.pos+1 : s.pos+end]
	s.advance(end + 1)

	decode := true
	if strings.HasPrefix(name, ":") {
		decode = false
		name = name[1:]
	}
	c, ok := component.Lookup(name)
	if !ok {
		return true
	}
	v, present := s.handle.Get(c, urlview.GetOptions{
		Decode:              decode,
		SuppressDefaultPort: true,
	})
	if present {
		s.out.WriteString(v)
	}
	return true
}

func (s *templateScanner) escape() {
	switch s.peekNext() {
	case 'r':
		s.out.WriteByte('\r')
	case 'n':
		s.out.WriteByte('\n')
	case 't':
		s.out.WriteByte('\t')
	default:
		s.out.WriteByte(s.peek())
		s.out.WriteByte(s.peekNext())
	}
	s.advance(2)
}
