// Package render turns resolved URL handles into output lines: the
// plain URL, a caller-supplied template, or members of a JSON array.
package render

import (
	"fmt"
	"io"

	"github.com/jacobmealey/urler/internal/urlview"
)

// Plain writes the full URL and a newline, suppressing a default
// port. The error is the serializer's when no URL can be built.
func Plain(w io.Writer, h *urlview.Handle) error {
	s, err := h.Serialize(urlview.SerializeOptions{SuppressDefaultPort: true})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	return nil
}
