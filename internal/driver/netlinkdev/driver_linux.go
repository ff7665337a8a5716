//go:build linux

package netlinkdev

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/insomniacslk/dhcp/dhcpv4/nclient4"
	"github.com/rs/zerolog"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"netbringup/pkg/models"
)

const (
	// maintainTimeout bounds a single renew or rebind exchange.
	maintainTimeout = 10 * time.Second

	defaultRetryInterval = 30 * time.Second
)

// linkOps is the subset of *netlink.Handle the driver uses
type linkOps interface {
	LinkByName(name string) (netlink.Link, error)
	LinkSetUp(link netlink.Link) error
	LinkSetHardwareAddr(link netlink.Link, hwaddr net.HardwareAddr) error
	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
	AddrReplace(link netlink.Link, addr *netlink.Addr) error
	AddrDel(link netlink.Link, addr *netlink.Addr) error
	RouteReplace(route *netlink.Route) error
}

// dhcpClient is the subset of *nclient4.Client the driver uses
type dhcpClient interface {
	Request(ctx context.Context, modifiers ...dhcpv4.Modifier) (*nclient4.Lease, error)
	Renew(ctx context.Context, lease *nclient4.Lease, modifiers ...dhcpv4.Modifier) (*nclient4.Lease, error)
	Close() error
}

type clientFactory func(iface string, mac net.HardwareAddr, timeout time.Duration) (dhcpClient, error)

func newNClient(iface string, mac net.HardwareAddr, timeout time.Duration) (dhcpClient, error) {
	opts := []nclient4.ClientOpt{nclient4.WithTimeout(timeout)}
	if len(mac) > 0 {
		opts = append(opts, nclient4.WithHWAddr(mac))
	}

	client, err := nclient4.New(iface, opts...)
	if err != nil {
		return nil, fmt.Errorf("create DHCPv4 client: %w", err)
	}
	return client, nil
}

// Driver drives one Linux interface through netlink and a DHCPv4 client
type Driver struct {
	cfg       Config
	nl        linkOps
	newClient clientFactory
	now       func() time.Time
	log       zerolog.Logger

	mac     net.HardwareAddr
	ip      net.IP
	gateway net.IP
	dns     net.IP

	lease       *Lease
	nextAttempt time.Time
}

// New opens a netlink handle for cfg.Interface
func New(cfg Config, log zerolog.Logger) (*Driver, error) {
	handle, err := netlink.NewHandle()
	if err != nil {
		return nil, fmt.Errorf("open netlink handle: %w", err)
	}

	return newDriver(cfg, handle, newNClient, time.Now, log), nil
}

func newDriver(cfg Config, nl linkOps, factory clientFactory, now func() time.Time, log zerolog.Logger) *Driver {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}

	return &Driver{
		cfg:       cfg,
		nl:        nl,
		newClient: factory,
		now:       now,
		log:       log.With().Str("interface", cfg.Interface).Logger(),
	}
}

func (d *Driver) link() (netlink.Link, error) {
	link, err := d.nl.LinkByName(d.cfg.Interface)
	if err != nil {
		return nil, fmt.Errorf("cannot find interface %q: %w", d.cfg.Interface, err)
	}
	return link, nil
}

// prepareLink applies the MAC and brings the interface up
func (d *Driver) prepareLink(mac net.HardwareAddr) (netlink.Link, error) {
	link, err := d.link()
	if err != nil {
		return nil, err
	}

	if len(mac) > 0 && !bytes.Equal(link.Attrs().HardwareAddr, mac) {
		// Not every NIC lets the address be changed; carry on with the
		// burned-in one in that case.
		if err := d.nl.LinkSetHardwareAddr(link, mac); err != nil {
			d.log.Warn().Err(err).Str("mac", mac.String()).Msg("Could not set MAC address")
		}
	}

	if err := d.nl.LinkSetUp(link); err != nil {
		return nil, fmt.Errorf("failed to set interface %q up: %w", d.cfg.Interface, err)
	}

	return link, nil
}

func (d *Driver) AcquireDynamic(mac net.HardwareAddr, timeout time.Duration) error {
	link, err := d.prepareLink(mac)
	if err != nil {
		return err
	}

	client, err := d.newClient(d.cfg.Interface, mac, timeout)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	raw, err := client.Request(ctx)
	if err != nil {
		return fmt.Errorf("DHCPv4 request: %w", err)
	}

	lease, err := newLease(raw, d.now())
	if err != nil {
		return err
	}

	if err := d.applyLease(link, lease); err != nil {
		return err
	}

	d.mac = mac
	return nil
}

func (d *Driver) applyLease(link netlink.Link, lease *Lease) error {
	if err := d.apply(link, lease.IPAddress, lease.SubnetMask, lease.Gateway(), lease.DNS()); err != nil {
		return err
	}

	d.lease = lease
	d.nextAttempt = time.Time{}

	d.log.Debug().
		Str("ip", lease.IPAddress.String()).
		Dur("lease_time", lease.Duration).
		Dur("t1", lease.Renewal).
		Dur("t2", lease.Rebinding).
		Msg("DHCPv4 lease applied")

	return nil
}

// apply programs the address and default route. Any other IPv4 address
// left on the link, from an earlier lease or an earlier run, is removed.
func (d *Driver) apply(link netlink.Link, ip net.IP, mask net.IPMask, gateway, dns net.IP) error {
	addr := &netlink.Addr{IPNet: &net.IPNet{IP: ip, Mask: mask}}
	if err := d.nl.AddrReplace(link, addr); err != nil {
		return fmt.Errorf("addr replace %s: %w", addr.IPNet, err)
	}
	d.pruneAddrs(link, addr)

	d.ip = ip
	d.gateway = gateway
	d.dns = dns

	if gateway != nil && !gateway.IsUnspecified() {
		route := &netlink.Route{LinkIndex: link.Attrs().Index, Gw: gateway}
		if err := d.nl.RouteReplace(route); err != nil {
			return fmt.Errorf("set IP address but failed to configure default gateway: %w", err)
		}
	}

	if d.cfg.ResolvConf != "" && dns != nil {
		if err := writeResolvConf(d.cfg.ResolvConf, []net.IP{dns}); err != nil {
			d.log.Warn().Err(err).Str("path", d.cfg.ResolvConf).Msg("Could not write resolver configuration")
		}
	}

	return nil
}

func (d *Driver) pruneAddrs(link netlink.Link, keep *netlink.Addr) {
	addrs, err := d.nl.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		d.log.Warn().Err(err).Msg("Could not list interface addresses")
		return
	}

	for i := range addrs {
		old := &addrs[i]
		if old.IPNet == nil || old.IP.IsLinkLocalUnicast() || old.IPNet.String() == keep.IPNet.String() {
			continue
		}
		if err := d.nl.AddrDel(link, old); err != nil {
			d.log.Warn().Err(err).Str("addr", old.IPNet.String()).Msg("Could not remove stale address")
			continue
		}
		d.log.Debug().Str("addr", old.IPNet.String()).Msg("Removed stale address")
	}
}

// current reads the IPv4 address the kernel holds for the link, preferring
// the one this driver programmed
func (d *Driver) current() *net.IPNet {
	link, err := d.link()
	if err != nil {
		return nil
	}

	addrs, err := d.nl.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return nil
	}

	var found *net.IPNet
	for _, a := range addrs {
		if a.IPNet == nil || a.IP.IsLinkLocalUnicast() {
			continue
		}
		if d.ip != nil && a.IP.Equal(d.ip) {
			return a.IPNet
		}
		if found == nil {
			found = a.IPNet
		}
	}
	return found
}

func (d *Driver) HardwarePresent() bool {
	_, err := d.link()
	return err == nil
}

func (d *Driver) LinkState() models.LinkState {
	link, err := d.link()
	if err != nil {
		return models.LinkUnknown
	}

	attrs := link.Attrs()
	switch attrs.OperState {
	case netlink.OperUp:
		return models.LinkUp
	case netlink.OperDown, netlink.OperLowerLayerDown, netlink.OperNotPresent:
		return models.LinkDown
	}

	// Some drivers never report an operational state; fall back to the
	// carrier flag.
	if attrs.RawFlags&unix.IFF_LOWER_UP != 0 {
		return models.LinkUp
	}
	if attrs.Flags&net.FlagUp != 0 {
		return models.LinkDown
	}
	return models.LinkUnknown
}

func (d *Driver) ConfigureStatic(mac net.HardwareAddr, ip, dns, gateway net.IP, subnet net.IPMask) error {
	link, err := d.prepareLink(mac)
	if err != nil {
		return err
	}

	d.lease = nil
	d.mac = mac

	return d.apply(link, ip.To4(), subnet, gateway, dns)
}

func (d *Driver) MaintainLease() models.LeaseResult {
	if d.lease == nil {
		return models.LeaseNone
	}

	now := d.now()
	if now.Before(d.nextAttempt) {
		return models.LeaseNone
	}

	switch d.lease.phase(now) {
	case phaseBound:
		return models.LeaseNone
	case phaseRenewing:
		if err := d.exchange(true); err != nil {
			d.log.Debug().Err(err).Msg("DHCPv4 renew failed")
			d.nextAttempt = now.Add(d.cfg.RetryInterval)
			return models.LeaseRenewFailed
		}
		return models.LeaseRenewed
	default:
		if err := d.exchange(false); err != nil {
			d.log.Debug().Err(err).Msg("DHCPv4 rebind failed")
			d.nextAttempt = now.Add(d.cfg.RetryInterval)
			return models.LeaseRebindFailed
		}
		return models.LeaseRebound
	}
}

// exchange renews the current lease with its server, or rebinds it by
// broadcasting a request for the same address
func (d *Driver) exchange(renew bool) error {
	link, err := d.link()
	if err != nil {
		return err
	}

	client, err := d.newClient(d.cfg.Interface, d.mac, maintainTimeout)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), maintainTimeout)
	defer cancel()

	var raw *nclient4.Lease
	if renew {
		raw, err = client.Renew(ctx, d.lease.raw)
	} else {
		raw, err = client.Request(ctx, d.lease.requestedIP())
	}
	if err != nil {
		return err
	}

	lease, err := newLease(raw, d.now())
	if err != nil {
		return err
	}

	return d.applyLease(link, lease)
}

func (d *Driver) LocalIP() net.IP {
	if n := d.current(); n != nil {
		return n.IP.To4()
	}
	return nil
}

func (d *Driver) GatewayIP() net.IP {
	return d.gateway
}

func (d *Driver) SubnetMask() net.IPMask {
	if n := d.current(); n != nil {
		return n.Mask
	}
	return nil
}

func (d *Driver) DNSServerIP() net.IP {
	return d.dns
}

// Lease returns the lease currently held, or nil when statically configured
func (d *Driver) Lease() *Lease {
	return d.lease
}
