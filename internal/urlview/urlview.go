// Package urlview holds one URL as its separate components and offers
// the parse/get/set/serialize operations the transformation pipeline
// is written against. Components are stored in their encoded wire
// form; decoding happens on demand at get time.
package urlview

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jacobmealey/urler/internal/component"
)

var (
	// ErrNoScheme is returned when serializing a handle without a scheme.
	ErrNoScheme = errors.New("no scheme")

	// ErrNoHost is returned when serializing a host-carrying scheme
	// without a host, or parsing a URL with an empty authority.
	ErrNoHost = errors.New("no host")

	// ErrBadPort is returned for a port outside 0-65535 or with
	// non-digit characters.
	ErrBadPort = errors.New("bad port number")

	// ErrBadScheme is returned for scheme text with illegal characters.
	ErrBadScheme = errors.New("bad scheme")

	// ErrBadComponent is returned when a component cannot be set or
	// cleared through this interface.
	ErrBadComponent = errors.New("bad component")
)

// field is one stored component: encoded text plus presence.
type field struct {
	text string
	ok   bool
}

func (f *field) set(s string) {
	f.text = s
	f.ok = true
}

func (f *field) clear() {
	f.text = ""
	f.ok = false
}

// Handle is one URL under transformation.
type Handle struct {
	scheme   field
	user     field
	password field
	options  field
	host     field
	zoneID   field
	port     field
	path     field
	query    field
	fragment field
}

// New returns an empty handle, used when no base URL is given and the
// URL is built purely from set directives.
func New() *Handle {
	return &Handle{}
}

// GetOptions selects the shape of a component read.
type GetOptions struct {
	// Decode percent-decodes the returned text.
	Decode bool
	// SuppressDefaultPort reports a port equal to the scheme's
	// default as absent. The same policy applies to the port inside
	// a whole-URL read.
	SuppressDefaultPort bool
}

// SetOptions controls a component write.
type SetOptions struct {
	// Encode percent-encodes the value before storing it.
	Encode bool
}

// SerializeOptions controls whole-URL output.
type SerializeOptions struct {
	SuppressDefaultPort bool
}

// Get returns one component's text and whether it is present. Reading
// the url pseudo-component serializes the whole handle; when that is
// not possible the component reports absent rather than erroring.
// The path component defaults to "/" when unset.
func (h *Handle) Get(c component.Component, o GetOptions) (string, bool) {
	var text string
	switch c {
	case component.URL:
		s, err := h.Serialize(SerializeOptions{SuppressDefaultPort: o.SuppressDefaultPort})
		if err != nil {
			return "", false
		}
		text = s
	case component.Scheme:
		if !h.scheme.ok {
			return "", false
		}
		text = h.scheme.text
	case component.User:
		if !h.user.ok {
			return "", false
		}
		text = h.user.text
	case component.Password:
		if !h.password.ok {
			return "", false
		}
		text = h.password.text
	case component.Options:
		if !h.options.ok {
			return "", false
		}
		text = h.options.text
	case component.Host:
		if !h.host.ok {
			return "", false
		}
		text = h.host.text
	case component.Port:
		if !h.port.ok {
			return "", false
		}
		if o.SuppressDefaultPort && h.scheme.ok && DefaultPort(h.scheme.text) == h.port.text {
			return "", false
		}
		text = h.port.text
	case component.Path:
		text = "/"
		if h.path.ok {
			text = h.path.text
		}
	case component.Query:
		if !h.query.ok {
			return "", false
		}
		text = h.query.text
	case component.Fragment:
		if !h.fragment.ok {
			return "", false
		}
		text = h.fragment.text
	case component.ZoneID:
		if !h.zoneID.ok {
			return "", false
		}
		text = h.zoneID.text
	default:
		return "", false
	}
	if o.Decode {
		text = Unescape(text)
	}
	return text, true
}

// Set stores one component. Setting the url pseudo-component replaces
// the whole handle by re-parsing the value with scheme guessing.
func (h *Handle) Set(c component.Component, value string, o SetOptions) error {
	switch c {
	case component.URL:
		parsed, err := Parse(value, ParseOptions{GuessScheme: true})
		if err != nil {
			return err
		}
		*h = *parsed
		return nil
	case component.Scheme:
		if !validScheme(value) {
			return ErrBadScheme
		}
		h.scheme.set(strings.ToLower(value))
		return nil
	case component.Port:
		if !validPort(value) {
			return ErrBadPort
		}
		h.port.set(value)
		return nil
	case component.Host:
		value = strings.TrimSuffix(strings.TrimPrefix(value, "["), "]")
		if o.Encode {
			value = escapeComponent(c, value)
		}
		h.host.set(value)
		return nil
	case component.User, component.Password, component.Options,
		component.Path, component.Query, component.Fragment, component.ZoneID:
		if o.Encode {
			value = escapeComponent(c, value)
		}
		h.fieldOf(c).set(value)
		return nil
	default:
		return ErrBadComponent
	}
}

// Clear removes one component. Clearing the url pseudo-component
// empties the whole handle.
func (h *Handle) Clear(c component.Component) error {
	if c == component.URL {
		*h = Handle{}
		return nil
	}
	f := h.fieldOf(c)
	if f == nil {
		return ErrBadComponent
	}
	f.clear()
	return nil
}

func (h *Handle) fieldOf(c component.Component) *field {
	switch c {
	case component.Scheme:
		return &h.scheme
	case component.User:
		return &h.user
	case component.Password:
		return &h.password
	case component.Options:
		return &h.options
	case component.Host:
		return &h.host
	case component.Port:
		return &h.port
	case component.Path:
		return &h.path
	case component.Query:
		return &h.query
	case component.Fragment:
		return &h.fragment
	case component.ZoneID:
		return &h.zoneID
	}
	return nil
}

// Serialize renders the handle as a full URL string. A scheme is
// required, and a host too except for the file scheme.
func (h *Handle) Serialize(o SerializeOptions) (string, error) {
	if !h.scheme.ok {
		return "", ErrNoScheme
	}
	scheme := h.scheme.text
	if !h.host.ok && scheme != "file" {
		return "", ErrNoHost
	}

	var sb strings.Builder
	sb.WriteString(scheme)
	sb.WriteString("://")

	if h.user.ok || h.password.ok || h.options.ok {
		sb.WriteString(h.user.text)
		if h.password.ok {
			sb.WriteByte(':')
			sb.WriteString(h.password.text)
		}
		if h.options.ok {
			sb.WriteByte(';')
			sb.WriteString(h.options.text)
		}
		sb.WriteByte('@')
	}

	if h.host.ok {
		if strings.Contains(h.host.text, ":") {
			sb.WriteByte('[')
			sb.WriteString(h.host.text)
			if h.zoneID.ok {
				sb.WriteString("%25")
				sb.WriteString(h.zoneID.text)
			}
			sb.WriteByte(']')
		} else {
			sb.WriteString(h.host.text)
		}
	}

	if h.port.ok {
		suppress := o.SuppressDefaultPort && DefaultPort(scheme) == h.port.text
		if !suppress {
			sb.WriteByte(':')
			sb.WriteString(h.port.text)
		}
	}

	path := "/"
	if h.path.ok && h.path.text != "" {
		path = h.path.text
		if path[0] != '/' {
			path = "/" + path
		}
	}
	sb.WriteString(path)

	if h.query.ok {
		sb.WriteByte('?')
		sb.WriteString(h.query.text)
	}
	if h.fragment.ok {
		sb.WriteByte('#')
		sb.WriteString(h.fragment.text)
	}
	return sb.String(), nil
}

// validScheme reports whether s is a legal scheme: one letter followed
// by letters, digits, '+', '-' or '.'.
func validScheme(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case i > 0 && (ch >= '0' && ch <= '9' || ch == '+' || ch == '-' || ch == '.'):
		default:
			return false
		}
	}
	return true
}

// validPort reports whether s is a decimal number between 0 and 65535.
func validPort(s string) bool {
	if s == "" || len(s) > 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s)
	return err == nil && n <= 65535
}
