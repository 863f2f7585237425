package urlview

import (
	"strings"

	"github.com/jacobmealey/urler/internal/component"
)

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes everything except RFC 3986 unreserved
// characters. Used for path segments and query pair halves before
// they are stored in a directive.
func Escape(s string) string {
	return escape(s, "")
}

// escapeComponent encodes a value for one component, leaving the
// characters that structure that component intact.
func escapeComponent(c component.Component, s string) string {
	switch c {
	case component.Path:
		return escape(s, "/")
	case component.Query:
		return escape(s, "=&")
	default:
		return escape(s, "")
	}
}

func escape(s, keep string) string {
	hit := false
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) && !strings.ContainsRune(keep, rune(s[i])) {
			hit = true
			break
		}
	}
	if !hit {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if unreserved(ch) || strings.ContainsRune(keep, rune(ch)) {
			sb.WriteByte(ch)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[ch>>4])
		sb.WriteByte(upperhex[ch&0xf])
	}
	return sb.String()
}

func unreserved(ch byte) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '-' || ch == '.' || ch == '_' || ch == '~'
}

// Unescape percent-decodes s. Invalid escapes pass through untouched
// and '+' is not treated as a space.
func Unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			sb.WriteByte(hexVal(s[i+1])<<4 | hexVal(s[i+2]))
			i += 2
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func hexVal(ch byte) byte {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}
