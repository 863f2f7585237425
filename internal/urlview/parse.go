package urlview

import (
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrMalformed is returned when the input cannot be parsed at all.
	ErrMalformed = errors.New("malformed input")

	// ErrSpaces is returned when the input contains whitespace and
	// AllowSpace was not requested.
	ErrSpaces = errors.New("whitespace in URL")
)

// ParseOptions controls base-URL parsing.
type ParseOptions struct {
	// GuessScheme derives a scheme from the host name when the input
	// carries none, instead of failing.
	GuessScheme bool
	// AllowSpace accepts space and tab in the input by
	// percent-encoding them.
	AllowSpace bool
}

// schemeGuesses maps well-known host name prefixes to the scheme they
// imply. Anything else guesses http.
var schemeGuesses = []struct {
	prefix string
	scheme string
}{
	{"ftp.", "ftp"},
	{"dict.", "dict"},
	{"ldap.", "ldap"},
	{"imap.", "imap"},
	{"smtp.", "smtp"},
	{"pop3.", "pop3"},
}

// Parse splits a URL string into a component handle.
func Parse(text string, opts ParseOptions) (*Handle, error) {
	if text == "" {
		return nil, ErrMalformed
	}

	if strings.ContainsAny(text, " \t") {
		if !opts.AllowSpace {
			return nil, ErrSpaces
		}
		text = strings.ReplaceAll(text, " ", "%20")
		text = strings.ReplaceAll(text, "\t", "%09")
	}
	text = escapeStrayPercents(text)

	if !hasScheme(text) {
		if !opts.GuessScheme {
			return nil, ErrBadScheme
		}
		text = guessScheme(text) + "://" + text
	}

	u, err := url.Parse(text)
	if err != nil {
		if strings.Contains(err.Error(), "port") {
			return nil, ErrBadPort
		}
		return nil, ErrMalformed
	}
	if !validScheme(u.Scheme) {
		return nil, ErrBadScheme
	}
	if u.Host == "" && u.Scheme != "file" {
		return nil, ErrNoHost
	}

	h := &Handle{}
	h.scheme.set(strings.ToLower(u.Scheme))

	if u.User != nil {
		user, password, options := splitUserinfo(u.User.String())
		h.user.set(user)
		if password != nil {
			h.password.set(*password)
		}
		if options != nil {
			h.options.set(*options)
		}
	}

	// net/url decodes the %25 zone delimiter of a bracketed host to a
	// bare '%', but older inputs may carry it encoded.
	host := u.Hostname()
	if zone := strings.Index(host, "%25"); zone >= 0 {
		h.zoneID.set(host[zone+3:])
		host = host[:zone]
	} else if zone := strings.Index(host, "%"); zone >= 0 {
		h.zoneID.set(host[zone+1:])
		host = host[:zone]
	}
	if host != "" {
		h.host.set(host)
	}

	if port := u.Port(); port != "" {
		if !validPort(port) {
			return nil, ErrBadPort
		}
		h.port.set(port)
	}

	if p := u.EscapedPath(); p != "" {
		h.path.set(p)
	}
	if u.RawQuery != "" || u.ForceQuery {
		h.query.set(u.RawQuery)
	}
	if f := u.EscapedFragment(); f != "" {
		h.fragment.set(f)
	}
	return h, nil
}

// hasScheme reports whether text starts with "scheme://".
func hasScheme(text string) bool {
	i := strings.Index(text, "://")
	return i > 0 && validScheme(text[:i])
}

// guessScheme picks a scheme for scheme-less input from the leading
// host name.
func guessScheme(text string) string {
	host := text
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(host)
	for _, g := range schemeGuesses {
		if strings.HasPrefix(host, g.prefix) {
			return g.scheme
		}
	}
	return "http"
}

// splitUserinfo splits an encoded userinfo string into user, password
// and options: user[:password][;options], with the options marker
// accepted after the user when no password is present.
func splitUserinfo(ui string) (string, *string, *string) {
	var password, options *string
	if i := strings.Index(ui, ":"); i >= 0 {
		rest := ui[i+1:]
		ui = ui[:i]
		if j := strings.Index(rest, ";"); j >= 0 {
			o := rest[j+1:]
			options = &o
			rest = rest[:j]
		}
		password = &rest
		return ui, password, options
	}
	if j := strings.Index(ui, ";"); j >= 0 {
		o := ui[j+1:]
		options = &o
		ui = ui[:j]
	}
	return ui, password, options
}

// escapeStrayPercents turns '%' bytes that do not begin a valid
// escape into "%25" so the stricter net/url parser accepts them.
func escapeStrayPercents(text string) string {
	if !strings.Contains(text, "%") {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '%' && !(i+2 < len(text) && isHex(text[i+1]) && isHex(text[i+2])) {
			sb.WriteString("%25")
			continue
		}
		sb.WriteByte(text[i])
	}
	return sb.String()
}

func isHex(ch byte) bool {
	return ch >= '0' && ch <= '9' ||
		ch >= 'a' && ch <= 'f' ||
		ch >= 'A' && ch <= 'F'
}
