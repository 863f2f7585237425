// Package qpair tracks the individual name=value pairs of a query
// string so they can be appended and trimmed one by one before the
// query is put back together.
package qpair

import (
	"strings"
)

// MaxPairs bounds how many pairs one URL run tracks. Pairs beyond the
// bound are dropped, counted and reported, never a hard failure.
const MaxPairs = 1000

// Pair is one name=value (or bare name) segment of a query string.
// Text is kept in its encoded wire form. Deleted marks a pair excised
// by a trim match; deleted pairs never come back.
type Pair struct {
	Text    string
	Deleted bool
}

// List is the pair buffer for one (URL, variant) run. Reset it
// between runs; the backing storage is reused.
type List struct {
	pairs   []Pair
	dropped int
}

// Reset empties the list without releasing its storage.
func (l *List) Reset() {
	l.pairs = l.pairs[:0]
	l.dropped = 0
}

// Len returns how many pairs are tracked, deleted ones included.
func (l *List) Len() int {
	return len(l.pairs)
}

// Dropped returns how many pairs were discarded over the MaxPairs
// bound since the last Reset.
func (l *List) Dropped() int {
	return l.dropped
}

// Pairs returns the tracked pairs in order.
func (l *List) Pairs() []Pair {
	return l.pairs
}

// Add appends one pair. It reports false when the pair was dropped
// because the list is full.
func (l *List) Add(text string) bool {
	if len(l.pairs) >= MaxPairs {
		l.dropped++
		return false
	}
	l.pairs = append(l.pairs, Pair{Text: text})
	return true
}

// Split breaks a query string on '&' into pairs, in order. Interior
// empty segments become empty pairs; a trailing separator does not.
func (l *List) Split(query string) {
	if query == "" {
		return
	}
	parts := strings.Split(query, "&")
	if strings.HasSuffix(query, "&") {
		parts = parts[:len(parts)-1]
	}
	for _, p := range parts {
		l.Add(p)
	}
}

// MarkDeleted flags every live pair whose name matches the pattern.
// The name is the text before the first '=', or the whole text when
// there is none. Matching is case-insensitive, exact by default and
// prefix when wildcard is set.
func (l *List) MarkDeleted(pattern string, wildcard bool) {
	for i := range l.pairs {
		if l.pairs[i].Deleted {
			continue
		}
		name := l.pairs[i].Text
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name = name[:eq]
		}
		if matchName(name, pattern, wildcard) {
			l.pairs[i].Deleted = true
		}
	}
}

func matchName(name, pattern string, wildcard bool) bool {
	if wildcard {
		return len(name) >= len(pattern) && strings.EqualFold(name[:len(pattern)], pattern)
	}
	return strings.EqualFold(name, pattern)
}

// Join reassembles the surviving pairs with '&'. Deleted and empty
// pairs contribute nothing, separators included.
func (l *List) Join() string {
	var sb strings.Builder
	for _, p := range l.pairs {
		if p.Deleted || p.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
