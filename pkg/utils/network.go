// ===== pkg/utils/network.go =====
package utils

import (
	"encoding/binary"
	"net"
	"strings"
)

// IPToInt converts an IPv4 address to a 32-bit integer
func IPToInt(ip net.IP) uint32 {
	if ip4 := ip.To4(); ip4 != nil {
		return binary.BigEndian.Uint32(ip4)
	}
	return 0
}

// IntToIP converts a 32-bit integer back to an IP address
func IntToIP(n uint32) net.IP {
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, n)
	return ip
}

// IsUnset reports whether ip is missing or the all-zero address
func IsUnset(ip net.IP) bool {
	return ip == nil || ip.IsUnspecified()
}

// IsPrivateMAC checks if a MAC address is a locally administered (private) MAC
func IsPrivateMAC(mac net.HardwareAddr) bool {
	if len(mac) == 0 {
		return false
	}
	// Check if the locally administered bit (bit 1 of the first octet) is set
	return (mac[0] & 0x02) != 0
}

// NormalizeMAC normalizes a MAC address string to uppercase with colons
func NormalizeMAC(mac string) string {
	if hwAddr, err := net.ParseMAC(mac); err == nil {
		return strings.ToUpper(hwAddr.String())
	}
	return strings.ToUpper(mac)
}

// FormatIP renders an address for diagnostics, "0.0.0.0" when absent
func FormatIP(ip net.IP) string {
	if ip == nil {
		return net.IPv4zero.String()
	}
	return ip.String()
}

// FormatMask renders a subnet mask in dotted-quad form
func FormatMask(mask net.IPMask) string {
	switch len(mask) {
	case net.IPv4len:
		return net.IP(mask).String()
	case net.IPv6len:
		return net.IP(mask[12:]).String()
	default:
		return net.IPv4zero.String()
	}
}
