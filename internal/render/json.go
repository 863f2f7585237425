package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacobmealey/urler/internal/component"
	"github.com/jacobmealey/urler/internal/urlview"
)

// JSON renders processed URLs as objects of a JSON array, one key per
// present component, values decoded. It tracks how many objects it
// has written so the commas land between them.
type JSON struct {
	count int
}

// Begin opens the array.
func (j *JSON) Begin(w io.Writer) {
	io.WriteString(w, "[\n")
}

// Write emits one URL object. Absent components get no key at all;
// the port is omitted when it matches the scheme default.
func (j *JSON) Write(w io.Writer, h *urlview.Handle) {
	if j.count > 0 {
		io.WriteString(w, ",\n")
	}
	j.count++

	io.WriteString(w, "  {\n")
	first := true
	for _, c := range component.All() {
		v, ok := h.Get(c, urlview.GetOptions{
			Decode:              true,
			SuppressDefaultPort: true,
		})
		if !ok {
			continue
		}
		if !first {
			io.WriteString(w, ",\n")
		}
		first = false
		fmt.Fprintf(w, "    \"%s\": \"%s\"", c, jsonEscape(v))
	}
	io.WriteString(w, "\n  }")
}

// End closes the array.
func (j *JSON) End(w io.Writer) {
	io.WriteString(w, "\n]\n")
}

// jsonEscape escapes a string for a JSON value: the short escapes
// for the usual control characters and \u00XX for the rest below
// 0x20.
func jsonEscape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if ch < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, ch)
			} else {
				sb.WriteByte(ch)
			}
		}
	}
	return sb.String()
}
