// Package bringup brings a wired interface up at boot and keeps it up.
//
// Initialize prefers DHCP and falls back to a static configuration; only a
// missing Ethernet controller is fatal. Maintain is then called from the
// caller's loop: it hands lease timing to the driver while the address came
// from DHCP, and polls carrier state on a fixed interval, logging changes.
//
// A Helper is not safe for concurrent use. Calling Initialize, Maintain,
// IsLinkUp or PrintConfiguration from more than one goroutine at a time is
// unsupported; the only blocking points are the driver's bounded DHCP
// attempt and the settle delay after a static configuration.
package bringup

import (
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"netbringup/pkg/models"
	"netbringup/pkg/utils"
)

// Options are the bring-up parameters. Zero values select the defaults:
// derived gateway, /24 mask, DNS equal to the gateway, 60s DHCP timeout.
type Options struct {
	MAC         net.HardwareAddr
	FallbackIP  net.IP
	Gateway     net.IP
	SubnetMask  net.IPMask
	DNS         net.IP
	DHCPTimeout time.Duration
}

// Helper owns the bring-up and maintenance state for one interface
type Helper struct {
	driver    Driver
	clock     Clock
	log       zerolog.Logger
	sessionID string

	mode          models.AddressingMode
	lastLink      models.LinkState
	lastLinkCheck time.Time
	lastLease     models.LeaseResult
}

// New creates a helper around driver. A nil clock selects the real clock.
func New(driver Driver, clock Clock, log zerolog.Logger) *Helper {
	if clock == nil {
		clock = RealClock{}
	}

	sessionID := uuid.NewString()

	return &Helper{
		driver:    driver,
		clock:     clock,
		log:       log.With().Str("session", sessionID).Logger(),
		sessionID: sessionID,
		lastLink:  models.LinkUnknown,
	}
}

// Initialize acquires an address, trying DHCP first and the static fallback
// second. It returns false only when no Ethernet hardware is present, in
// which case nothing has been configured.
func (h *Helper) Initialize(opts Options) bool {
	timeout := opts.DHCPTimeout
	if timeout <= 0 {
		timeout = DefaultDHCPTimeout
	}

	h.log.Info().Msg("=== Ethernet Initialization ===")
	h.log.Info().
		Stringer("mode", models.ModeDynamic).
		Str("mac", opts.MAC.String()).
		Dur("timeout", timeout).
		Msg("Attempting DHCP configuration")

	if err := h.driver.AcquireDynamic(opts.MAC, timeout); err != nil {
		h.log.Warn().Err(err).Msg("DHCP failed")

		if !h.driver.HardwarePresent() {
			h.log.Error().Msg("Ethernet hardware not found, cannot continue without hardware")
			return false
		}

		if h.driver.LinkState() == models.LinkDown {
			h.log.Warn().Msg("Ethernet cable not connected")
		}

		h.applyFallback(opts)
		h.mode = models.ModeStatic
	} else {
		h.mode = models.ModeDynamic
	}

	h.logConfiguration("Network configured")
	h.log.Info().Msg("=== Ethernet Ready ===")

	h.lastLinkCheck = h.clock.Now()
	return true
}

// applyFallback fills in the static defaults and hands them to the driver
func (h *Helper) applyFallback(opts Options) {
	gateway := ResolveGateway(opts.Gateway, opts.FallbackIP)
	dns := ResolveDNS(opts.DNS, gateway)
	subnet := ResolveSubnet(opts.SubnetMask)

	h.log.Info().
		Stringer("mode", models.ModeStatic).
		Str("ip", utils.FormatIP(opts.FallbackIP)).
		Str("gateway", gateway.String()).
		Str("subnet", utils.FormatMask(subnet)).
		Str("dns", dns.String()).
		Msg("Falling back to static IP configuration")

	if err := h.driver.ConfigureStatic(opts.MAC, opts.FallbackIP, dns, gateway, subnet); err != nil {
		h.log.Error().Err(err).Msg("Static configuration was not fully applied")
	}

	h.clock.Sleep(SettleDelay)
}

// Maintain performs whatever lease or link work is due and returns. It is
// meant to be called on every pass of the caller's loop. A zero or negative
// linkCheckInterval selects DefaultLinkCheckInterval rather than polling the
// link on every call; pass a small positive interval to poll that often.
func (h *Helper) Maintain(linkCheckInterval time.Duration) {
	if linkCheckInterval <= 0 {
		linkCheckInterval = DefaultLinkCheckInterval
	}

	if h.mode == models.ModeDynamic {
		h.maintainLease()
	}

	now := h.clock.Now()
	if now.Sub(h.lastLinkCheck) < linkCheckInterval {
		return
	}

	state := h.driver.LinkState()
	if state != h.lastLink {
		h.log.Info().
			Stringer("link", state).
			Stringer("previous", h.lastLink).
			Msg("Link status changed")
		h.lastLink = state
	}

	h.lastLinkCheck = now
}

func (h *Helper) maintainLease() {
	result := h.driver.MaintainLease()
	if result == models.LeaseNone {
		return
	}

	h.lastLease = result

	switch result {
	case models.LeaseRenewFailed:
		h.log.Warn().Msg("DHCP: Renew failed")
	case models.LeaseRenewed:
		h.log.Info().Str("ip", utils.FormatIP(h.driver.LocalIP())).Msg("DHCP: Renewed")
	case models.LeaseRebindFailed:
		h.log.Warn().Msg("DHCP: Rebind failed")
	case models.LeaseRebound:
		h.log.Info().Str("ip", utils.FormatIP(h.driver.LocalIP())).Msg("DHCP: Rebound")
	}
}

// IsLinkUp queries the driver directly; the cached observation is not used.
func (h *Helper) IsLinkUp() bool {
	return h.driver.LinkState() == models.LinkUp
}

// PrintConfiguration logs the live configuration, mode and link state
func (h *Helper) PrintConfiguration() {
	h.logConfiguration("Network Configuration")
}

func (h *Helper) logConfiguration(msg string) {
	cfg := h.Configuration()

	h.log.Info().
		Str("ip", utils.FormatIP(cfg.Address)).
		Str("gateway", utils.FormatIP(cfg.Gateway)).
		Str("subnet", utils.FormatMask(cfg.SubnetMask)).
		Str("dns", utils.FormatIP(cfg.DNS)).
		Stringer("mode", h.mode).
		Stringer("link", h.driver.LinkState()).
		Msg(msg)
}

// Configuration reads the live configuration from the driver
func (h *Helper) Configuration() models.NetworkConfiguration {
	return models.NetworkConfiguration{
		Address:    h.driver.LocalIP(),
		Gateway:    h.driver.GatewayIP(),
		SubnetMask: h.driver.SubnetMask(),
		DNS:        h.driver.DNSServerIP(),
	}
}

// Mode returns how the active address was obtained
func (h *Helper) Mode() models.AddressingMode {
	return h.mode
}

// LastObservation returns the link state seen by the most recent periodic check
func (h *Helper) LastObservation() models.LinkState {
	return h.lastLink
}

// LastLinkCheck returns when the link was last polled by Maintain
func (h *Helper) LastLinkCheck() time.Time {
	return h.lastLinkCheck
}

// LastLeaseResult returns the most recent lease event other than LeaseNone
func (h *Helper) LastLeaseResult() models.LeaseResult {
	return h.lastLease
}

// SessionID identifies this helper instance in logs
func (h *Helper) SessionID() string {
	return h.sessionID
}
