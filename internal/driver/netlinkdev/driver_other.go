//go:build !linux

package netlinkdev

import (
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"

	"netbringup/pkg/models"
)

// ErrUnsupported is returned by New on platforms without rtnetlink
var ErrUnsupported = errors.New("netlink driver is only available on linux")

// Driver is never constructed outside linux
type Driver struct{}

func New(Config, zerolog.Logger) (*Driver, error) {
	return nil, ErrUnsupported
}

func (*Driver) AcquireDynamic(net.HardwareAddr, time.Duration) error { return ErrUnsupported }
func (*Driver) HardwarePresent() bool                               { return false }
func (*Driver) LinkState() models.LinkState                         { return models.LinkUnknown }
func (*Driver) MaintainLease() models.LeaseResult                   { return models.LeaseNone }
func (*Driver) LocalIP() net.IP                                     { return nil }
func (*Driver) GatewayIP() net.IP                                   { return nil }
func (*Driver) SubnetMask() net.IPMask                              { return nil }
func (*Driver) DNSServerIP() net.IP                                 { return nil }

func (*Driver) ConfigureStatic(net.HardwareAddr, net.IP, net.IP, net.IP, net.IPMask) error {
	return ErrUnsupported
}
