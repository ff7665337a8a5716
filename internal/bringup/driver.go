package bringup

//go:generate mockgen -destination=mock_driver.go -package=bringup netbringup/internal/bringup Driver

import (
	"net"
	"time"

	"netbringup/pkg/models"
)

// Driver is the link-layer collaborator the helper composes. Exactly one
// driver exists per interface; the helper never caches what it reports.
type Driver interface {
	// AcquireDynamic runs DHCP for mac and applies the result. It must give
	// up after timeout.
	AcquireDynamic(mac net.HardwareAddr, timeout time.Duration) error

	// HardwarePresent reports whether the Ethernet controller was detected.
	HardwarePresent() bool

	// LinkState reports the live carrier state.
	LinkState() models.LinkState

	// ConfigureStatic applies a fixed configuration.
	ConfigureStatic(mac net.HardwareAddr, ip, dns, gateway net.IP, subnet net.IPMask) error

	// MaintainLease renews or rebinds the DHCP lease when the lease timers
	// say so, and reports what happened.
	MaintainLease() models.LeaseResult

	LocalIP() net.IP
	GatewayIP() net.IP
	SubnetMask() net.IPMask
	DNSServerIP() net.IP
}
