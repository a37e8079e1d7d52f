package codec

import (
	"fmt"
	"net/mail"
	"net/netip"
	"net/url"

	"github.com/google/uuid"
)

// ParseUUID accepts the canonical and URN/braced UUID forms.
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// ParseIP accepts an IPv4 or IPv6 address.
func ParseIP(s string) (netip.Addr, error) {
	return netip.ParseAddr(s)
}

// ParseIPv4 accepts an IPv4 address only.
func ParseIPv4(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if !a.Is4() {
		return netip.Addr{}, fmt.Errorf("codec: %q is not an IPv4 address", s)
	}
	return a, nil
}

// ParseIPv6 accepts an IPv6 address only.
func ParseIPv6(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if !a.Is6() || a.Is4In6() {
		return netip.Addr{}, fmt.Errorf("codec: %q is not an IPv6 address", s)
	}
	return a, nil
}

// ParseIPInterface accepts an address with prefix length ("10.0.0.1/24").
func ParseIPInterface(s string) (netip.Prefix, error) {
	return netip.ParsePrefix(s)
}

// ParseIPv4Interface accepts an IPv4 interface only.
func ParseIPv4Interface(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	if !p.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("codec: %q is not an IPv4 interface", s)
	}
	return p, nil
}

// ParseIPv6Interface accepts an IPv6 interface only.
func ParseIPv6Interface(s string) (netip.Prefix, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	if !p.Addr().Is6() {
		return netip.Prefix{}, fmt.Errorf("codec: %q is not an IPv6 interface", s)
	}
	return p, nil
}

// ParseURL accepts absolute URLs with a scheme and host.
func ParseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("codec: %q is not an absolute URL", s)
	}
	return u, nil
}

// ParseEmail accepts a bare address ("a@example.com"); display names are rejected.
func ParseEmail(s string) (string, error) {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	if a.Name != "" || a.Address != s {
		return "", fmt.Errorf("codec: %q is not a bare email address", s)
	}
	return a.Address, nil
}
