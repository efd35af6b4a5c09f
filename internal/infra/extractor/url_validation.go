package extractor

import (
	"fmt"
	"net"
	"net/url"
	"syscall"
)

// lookupIP is replaced in tests.
var lookupIP = net.LookupIP

// ValidateURL checks that rawURL is an absolute http(s) URL and, when
// denyPrivateIPs is set, that none of its resolved addresses is private,
// loopback, link-local or unspecified.
func ValidateURL(rawURL string, denyPrivateIPs bool) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}
	if !denyPrivateIPs {
		return nil
	}

	ips, err := lookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", ErrPrivateIP, hostname, ip.String())
		}
	}
	return nil
}

// denyPrivateDial is a net.Dialer Control hook. It runs on the address the
// connection is actually made to, so a hostname that resolves differently
// at dial time than during ValidateURL is still refused.
func denyPrivateDial(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: bad dial address %s: %v", ErrInvalidURL, address, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("%w: dial address %s is not an IP", ErrInvalidURL, address)
	}
	if isPrivateIP(ip) {
		return fmt.Errorf("%w: connection to %s refused", ErrPrivateIP, ip.String())
	}
	return nil
}

// isPrivateIP covers RFC 1918, RFC 4193, loopback, link-local and 0.0.0.0/::.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsUnspecified()
}
