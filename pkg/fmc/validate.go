package fmc

import (
	"net/netip"
	"strings"
)

// ValidateIPAddress reports whether s is a valid IPv4 address.
func ValidateIPAddress(s string) bool {
	addr, err := netip.ParseAddr(s)

	return err == nil && addr.Is4()
}

// ValidateIPNetwork reports whether s is a valid IPv4 network in CIDR
// notation, e.g. "192.168.1.0/24".
func ValidateIPNetwork(s string) bool {
	prefix, err := netip.ParsePrefix(s)

	return err == nil && prefix.Addr().Is4()
}

// ValidateIPRange reports whether start and end form a valid IPv4 range.
func ValidateIPRange(start, end string) bool {
	startAddr, err := netip.ParseAddr(start)
	if err != nil || !startAddr.Is4() {
		return false
	}

	endAddr, err := netip.ParseAddr(end)
	if err != nil || !endAddr.Is4() {
		return false
	}

	return startAddr.Compare(endAddr) <= 0
}

// SanitizeName rewrites a name so the FMC accepts it: spaces become
// underscores and everything but alphanumerics, underscore, and hyphen is
// dropped.
func SanitizeName(name string) string {
	var builder strings.Builder

	for _, r := range strings.ReplaceAll(name, " ", "_") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ChunkStrings splits items into chunks of at most size elements. Useful for
// bulk operations against API limits.
func ChunkStrings(items []string, size int) [][]string {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	var chunks [][]string

	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}

		chunks = append(chunks, items[start:end])
	}

	return chunks
}
