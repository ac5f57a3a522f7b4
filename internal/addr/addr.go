// Package addr normalizes server connection strings into the canonical
// host:port form used as the unique key for a tracked server.
package addr

import (
	"errors"
	"net"
	"strconv"
	"strings"
)

var (
	ErrEmpty   = errors.New("empty connection string")
	ErrBadPort = errors.New("invalid port in connection string")
)

// Canonicalize turns a user- or network-supplied connection string into its
// canonical form: lowercased host, explicit port. Accepts "host",
// "host:port", bare IPv6 ("::1") and bracketed IPv6 ("[::1]:4000") forms.
// The default port is applied when the string carries none.
func Canonicalize(s string, defaultPort uint16) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmpty
	}

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		// No port present: either a plain host or a bare IPv6 address.
		host = strings.Trim(s, "[]")
		port = ""
	}

	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return "", ErrEmpty
	}

	if port == "" {
		port = strconv.Itoa(int(defaultPort))
	} else {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return "", ErrBadPort
		}
	}

	return net.JoinHostPort(host, port), nil
}
