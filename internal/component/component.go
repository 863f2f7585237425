package component

import "strings"

// Component identifies one named part of a URL.
type Component int

const (
	// URL is the whole-URL pseudo-component. It is valid for base-URL
	// input and whole-URL output, never as a set/trim/append target.
	URL Component = iota
	Scheme
	User
	Password
	Options
	Host
	Port
	Path
	Query
	Fragment
	ZoneID
)

// Count is the size of the component table, including the url
// pseudo-component.
const Count = int(ZoneID) + 1

// names holds the canonical spellings in output order. The order is
// load-bearing: the JSON renderer walks it top to bottom.
var names = [Count]string{
	"url",
	"scheme",
	"user",
	"password",
	"options",
	"host",
	"port",
	"path",
	"query",
	"fragment",
	"zoneid",
}

// String returns the canonical lowercase name.
func (c Component) String() string {
	if c < 0 || int(c) >= Count {
		return "<invalid>"
	}
	return names[c]
}

// Lookup resolves a component name case-insensitively against the
// fixed table. The second return is false for unknown names.
func Lookup(name string) (Component, bool) {
	for i, n := range names {
		if strings.EqualFold(name, n) {
			return Component(i), true
		}
	}
	return 0, false
}

// All returns the components in canonical table order.
func All() []Component {
	cs := make([]Component, Count)
	for i := range cs {
		cs[i] = Component(i)
	}
	return cs
}

// Names returns the canonical names in table order, for help text.
func Names() []string {
	return names[:]
}
