//go:build linux

package netlinkdev

import (
	"fmt"
	"net"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/insomniacslk/dhcp/dhcpv4/nclient4"
)

// defaultLeaseDuration is used when the server omits the lease time; we
// still check in with it every day.
const defaultLeaseDuration = 23 * time.Hour

type leasePhase int

const (
	phaseBound leasePhase = iota
	phaseRenewing
	phaseRebinding
	phaseExpired
)

// Lease is the part of a DHCP ACK the driver applies and times
type Lease struct {
	IPAddress   net.IP
	SubnetMask  net.IPMask
	Routers     []net.IP
	NameServers []net.IP

	Duration  time.Duration
	Renewal   time.Duration
	Rebinding time.Duration
	Obtained  time.Time

	raw *nclient4.Lease
}

func newLease(raw *nclient4.Lease, obtained time.Time) (*Lease, error) {
	if raw == nil || raw.ACK == nil {
		return nil, fmt.Errorf("response has no ACK")
	}
	ack := raw.ACK

	ip := ack.YourIPAddr.To4()
	if ip == nil || ip.IsUnspecified() {
		return nil, fmt.Errorf("no IP in DHCP ACK")
	}

	mask := ack.SubnetMask()
	if len(mask) != net.IPv4len {
		return nil, fmt.Errorf("response has missing or malformed subnet mask")
	}

	duration := ack.IPAddressLeaseTime(defaultLeaseDuration)

	lease := &Lease{
		IPAddress:   ip,
		SubnetMask:  mask,
		Routers:     ack.Router(),
		NameServers: ack.DNS(),
		Duration:    duration,
		Renewal:     ack.IPAddressRenewalTime(duration / 2),
		Rebinding:   ack.IPAddressRebindingTime(duration * 7 / 8),
		Obtained:    obtained,
		raw:         raw,
	}

	// Servers occasionally send timers that do not nest; fall back to the
	// RFC 2131 defaults in that case.
	if lease.Renewal <= 0 || lease.Renewal >= lease.Duration {
		lease.Renewal = duration / 2
	}
	if lease.Rebinding <= lease.Renewal || lease.Rebinding >= lease.Duration {
		lease.Rebinding = duration * 7 / 8
	}

	return lease, nil
}

// Gateway returns the first router, or nil
func (l *Lease) Gateway() net.IP {
	if len(l.Routers) == 0 {
		return nil
	}
	return l.Routers[0]
}

// DNS returns the first name server, or nil
func (l *Lease) DNS() net.IP {
	if len(l.NameServers) == 0 {
		return nil
	}
	return l.NameServers[0]
}

func (l *Lease) phase(now time.Time) leasePhase {
	held := now.Sub(l.Obtained)
	switch {
	case held >= l.Duration:
		return phaseExpired
	case held >= l.Rebinding:
		return phaseRebinding
	case held >= l.Renewal:
		return phaseRenewing
	default:
		return phaseBound
	}
}

// requestedIP asks the server for the address we already hold
func (l *Lease) requestedIP() dhcpv4.Modifier {
	return dhcpv4.WithOption(dhcpv4.OptRequestedIPAddress(l.IPAddress))
}
