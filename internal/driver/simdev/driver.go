// Package simdev is an in-memory link-layer driver.
//
// It stands in for real hardware in development environments where the
// daemon runs without root access, and in tests that need whole bring-up
// scenarios (missing controller, DHCP outage, cable pulled) to be
// reproducible. Knobs may be changed while the helper is running.
package simdev

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"netbringup/pkg/models"
)

var (
	// ErrNoHardware is returned when the simulated controller is absent.
	ErrNoHardware = errors.New("simulated ethernet controller not present")

	// ErrNoOffer is returned when DHCP is unavailable or the cable is out.
	ErrNoOffer = errors.New("no DHCP offer received")
)

// Config describes the simulated network
type Config struct {
	HardwarePresent bool
	DHCPAvailable   bool
	Link            models.LinkState

	LeaseIP      net.IP
	LeaseGateway net.IP
	LeaseMask    net.IPMask
	LeaseDNS     net.IP

	// LeaseScript is cycled through by MaintainLease while a lease is held.
	LeaseScript []models.LeaseResult

	// AcquireDelay is how long a DHCP attempt takes, capped by its timeout.
	AcquireDelay time.Duration
}

// Stats counts driver calls
type Stats struct {
	Acquires        int
	StaticConfigs   int
	LinkQueries     int
	LeaseMaintains  int
	HardwareQueries int
}

// Driver implements the bring-up driver on top of Config
type Driver struct {
	mu    sync.Mutex
	cfg   Config
	sleep func(time.Duration)

	mac     net.HardwareAddr
	ip      net.IP
	gateway net.IP
	mask    net.IPMask
	dns     net.IP
	leased  bool

	scriptPos int
	stats     Stats
}

// New creates a simulated driver. A nil sleep function skips the simulated
// DHCP latency.
func New(cfg Config, sleep func(time.Duration)) *Driver {
	if sleep == nil {
		sleep = func(time.Duration) {}
	}
	return &Driver{cfg: cfg, sleep: sleep}
}

func (d *Driver) AcquireDynamic(mac net.HardwareAddr, timeout time.Duration) error {
	d.mu.Lock()
	d.stats.Acquires++
	cfg := d.cfg
	d.mu.Unlock()

	delay := cfg.AcquireDelay
	if timeout > 0 && delay > timeout {
		delay = timeout
	}
	if delay > 0 {
		d.sleep(delay)
	}

	if !cfg.HardwarePresent {
		return ErrNoHardware
	}
	if !cfg.DHCPAvailable || cfg.Link == models.LinkDown {
		return fmt.Errorf("%w after %s", ErrNoOffer, delay)
	}
	if cfg.LeaseIP == nil {
		return fmt.Errorf("%w: no lease address configured", ErrNoOffer)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.mac = mac
	d.ip = cfg.LeaseIP
	d.gateway = cfg.LeaseGateway
	d.mask = cfg.LeaseMask
	d.dns = cfg.LeaseDNS
	d.leased = true
	d.scriptPos = 0

	return nil
}

func (d *Driver) HardwarePresent() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.HardwareQueries++
	return d.cfg.HardwarePresent
}

func (d *Driver) LinkState() models.LinkState {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.LinkQueries++
	if !d.cfg.HardwarePresent {
		return models.LinkUnknown
	}
	return d.cfg.Link
}

func (d *Driver) ConfigureStatic(mac net.HardwareAddr, ip, dns, gateway net.IP, subnet net.IPMask) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.StaticConfigs++
	if !d.cfg.HardwarePresent {
		return ErrNoHardware
	}

	d.mac = mac
	d.ip = ip
	d.dns = dns
	d.gateway = gateway
	d.mask = subnet
	d.leased = false

	return nil
}

func (d *Driver) MaintainLease() models.LeaseResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.LeaseMaintains++
	if !d.leased || len(d.cfg.LeaseScript) == 0 {
		return models.LeaseNone
	}

	result := d.cfg.LeaseScript[d.scriptPos%len(d.cfg.LeaseScript)]
	d.scriptPos++
	return result
}

func (d *Driver) LocalIP() net.IP {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ip
}

func (d *Driver) GatewayIP() net.IP {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gateway
}

func (d *Driver) SubnetMask() net.IPMask {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mask
}

func (d *Driver) DNSServerIP() net.IP {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dns
}

// SetLink changes the simulated carrier state
func (d *Driver) SetLink(state models.LinkState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.Link = state
}

// SetDHCPAvailable turns the simulated DHCP server on or off
func (d *Driver) SetDHCPAvailable(available bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.DHCPAvailable = available
}

// Stats returns a copy of the call counters
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// ParseLinkState parses "up", "down" or "unknown"
func ParseLinkState(s string) (models.LinkState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "on", "connected":
		return models.LinkUp, nil
	case "down", "off", "disconnected":
		return models.LinkDown, nil
	case "", "unknown":
		return models.LinkUnknown, nil
	default:
		return models.LinkUnknown, fmt.Errorf("invalid link state %q", s)
	}
}

// ParseLeaseScript parses a comma separated list such as
// "none,none,renewed,renew-failed,rebound"
func ParseLeaseScript(s string) ([]models.LeaseResult, error) {
	var script []models.LeaseResult

	for _, field := range strings.Split(s, ",") {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}

		var result models.LeaseResult
		switch field {
		case "none":
			result = models.LeaseNone
		case "renew-failed":
			result = models.LeaseRenewFailed
		case "renewed":
			result = models.LeaseRenewed
		case "rebind-failed":
			result = models.LeaseRebindFailed
		case "rebound":
			result = models.LeaseRebound
		default:
			return nil, fmt.Errorf("invalid lease result %q", field)
		}
		script = append(script, result)
	}

	return script, nil
}
