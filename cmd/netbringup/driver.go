package main

import (
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"netbringup/internal/bringup"
	"netbringup/internal/config"
	"netbringup/internal/driver/netlinkdev"
	"netbringup/internal/driver/simdev"
	"netbringup/pkg/utils"
)

// buildDriver selects the link-layer driver for cfg.Driver
func buildDriver(cfg *config.Config, log zerolog.Logger) (bringup.Driver, error) {
	switch cfg.Driver {
	case config.DriverSim:
		simCfg, err := simConfig(cfg.Sim)
		if err != nil {
			return nil, utils.WrapError(err, "sim driver")
		}
		return simdev.New(simCfg, time.Sleep), nil

	case config.DriverNetlink:
		d, err := netlinkdev.New(netlinkdev.Config{
			Interface:  cfg.Interface,
			ResolvConf: cfg.ResolvConf,
		}, log)
		if err != nil {
			return nil, utils.WrapError(err, "netlink driver")
		}
		return d, nil

	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

func simConfig(s config.SimConfig) (simdev.Config, error) {
	link, err := simdev.ParseLinkState(s.Link)
	if err != nil {
		return simdev.Config{}, err
	}

	script, err := simdev.ParseLeaseScript(s.LeaseScript)
	if err != nil {
		return simdev.Config{}, err
	}

	out := simdev.Config{
		HardwarePresent: s.Hardware,
		DHCPAvailable:   s.DHCP,
		Link:            link,
		LeaseScript:     script,
		AcquireDelay:    s.AcquireDelay,
	}

	for _, f := range []struct {
		name  string
		value string
		dst   *net.IP
	}{
		{"leaseip", s.LeaseIP, &out.LeaseIP},
		{"leasegateway", s.LeaseGateway, &out.LeaseGateway},
		{"leasedns", s.LeaseDNS, &out.LeaseDNS},
		{"leasemask", s.LeaseMask, nil},
	} {
		if f.value == "" {
			continue
		}
		ip := net.ParseIP(f.value).To4()
		if ip == nil {
			return simdev.Config{}, fmt.Errorf("%s: %q is not an IPv4 address", f.name, f.value)
		}
		if f.dst == nil {
			out.LeaseMask = net.IPMask(ip)
			continue
		}
		*f.dst = ip
	}

	return out, nil
}
