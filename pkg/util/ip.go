// Package util provides shared IP parsing and logging helpers.
package util

import (
	"fmt"
	"net"
)

// ParseIPv4CIDR parses s as an IPv4 network in CIDR notation. The address
// part is masked down to the network address (non-strict), so both
// "172.20.0.0/24" and "172.20.0.5/24" yield 172.20.0.0/24.
func ParseIPv4CIDR(s string) (*net.IPNet, error) {
	ip, ipNet, err := net.ParseCIDR(s)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR notation: %s", s)
	}
	if ip.To4() == nil {
		return nil, fmt.Errorf("not an IPv4 network: %s", s)
	}
	ipNet.IP = ipNet.IP.To4()
	return ipNet, nil
}

// IsValidIPv4CIDR reports whether s parses as an IPv4 CIDR.
func IsValidIPv4CIDR(s string) bool {
	_, err := ParseIPv4CIDR(s)
	return err == nil
}

const maxASN = 4294967295 // 4-byte ASN range

// ValidateASN checks if an AS number is valid (1 to 4294967295).
func ValidateASN(asn int) error {
	if asn < 1 || asn > maxASN {
		return fmt.Errorf("AS number must be between 1 and %d, got %d", maxASN, asn)
	}
	return nil
}
