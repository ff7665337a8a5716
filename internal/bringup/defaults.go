package bringup

import (
	"net"
	"time"

	"netbringup/pkg/utils"
)

const (
	// DefaultDHCPTimeout bounds the only blocking DHCP step.
	DefaultDHCPTimeout = 60 * time.Second

	// DefaultLinkCheckInterval is the carrier polling period used by Maintain.
	DefaultLinkCheckInterval = 10 * time.Second

	// SettleDelay is how long the controller needs after a static
	// reconfiguration before it is usable. Measured on hardware.
	SettleDelay = time.Second
)

// DefaultSubnetMask is the /24 mask used when none is supplied.
var DefaultSubnetMask = net.IPv4Mask(255, 255, 255, 0)

// DeriveGateway returns the fallback address with its last octet set to 1.
// The subnet mask is not consulted: A.B.C.D always yields A.B.C.1.
func DeriveGateway(fallback net.IP) net.IP {
	return utils.IntToIP(utils.IPToInt(fallback)&^0xff | 1)
}

// ResolveGateway returns gateway, or the derived one when gateway is unset.
func ResolveGateway(gateway, fallback net.IP) net.IP {
	if utils.IsUnset(gateway) {
		return DeriveGateway(fallback)
	}
	return gateway
}

// ResolveDNS returns dns, or gateway when dns is unset.
func ResolveDNS(dns, gateway net.IP) net.IP {
	if utils.IsUnset(dns) {
		return gateway
	}
	return dns
}

// ResolveSubnet returns subnet, or DefaultSubnetMask when subnet is empty.
func ResolveSubnet(subnet net.IPMask) net.IPMask {
	if len(subnet) == 0 {
		return DefaultSubnetMask
	}
	return subnet
}
