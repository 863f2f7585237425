package urlview

// defaultPorts maps schemes to their well-known default port.
var defaultPorts = map[string]string{
	"dict":   "2628",
	"ftp":    "21",
	"ftps":   "990",
	"gopher": "70",
	"http":   "80",
	"https":  "443",
	"imap":   "143",
	"imaps":  "993",
	"ldap":   "389",
	"ldaps":  "636",
	"mqtt":   "1883",
	"pop3":   "110",
	"pop3s":  "995",
	"rtmp":   "1935",
	"rtsp":   "554",
	"scp":    "22",
	"sftp":   "22",
	"smb":    "445",
	"smbs":   "445",
	"smtp":   "25",
	"smtps":  "465",
	"telnet": "23",
	"tftp":   "69",
	"ws":     "80",
	"wss":    "443",
}

// DefaultPort returns the default port for a scheme, or "" when the
// scheme has none on record.
func DefaultPort(scheme string) string {
	return defaultPorts[scheme]
}
