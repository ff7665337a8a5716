// ===== internal/config/config.go =====
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Driver flavors
const (
	DriverNetlink = "netlink"
	DriverSim     = "sim"
)

// EnvPrefix is prepended to upper-cased key names for environment overrides
const EnvPrefix = "NETBRINGUP_"

// Config holds all daemon configuration
type Config struct {
	// Path is the file the configuration was loaded from
	Path string

	// Interface settings
	Interface  string
	Driver     string
	MAC        string
	FallbackIP string
	Gateway    string
	Subnet     string
	DNS        string

	// Timing
	DHCPTimeout       time.Duration
	LinkCheckInterval time.Duration
	LoopInterval      time.Duration

	// File paths
	MACDBFile  string
	ResolvConf string

	// Status surface
	HTTPListen string

	// Logging
	LogLevel  string
	LogOutput string

	Sim SimConfig
}

// SimConfig describes the network the sim driver pretends to be attached to
type SimConfig struct {
	Hardware     bool
	DHCP         bool
	Link         string
	LeaseIP      string
	LeaseGateway string
	LeaseMask    string
	LeaseDNS     string
	LeaseScript  string
	AcquireDelay time.Duration
}

// Network is the parsed addressing part of Config. Unset optional
// addresses are nil.
type Network struct {
	MAC        net.HardwareAddr
	FallbackIP net.IP
	Gateway    net.IP
	Subnet     net.IPMask
	DNS        net.IP
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Interface:         "eth0",
		Driver:            DriverNetlink,
		MAC:               "DE:AD:BE:EF:FE:ED",
		FallbackIP:        "192.168.1.177",
		DHCPTimeout:       60 * time.Second,
		LinkCheckInterval: 10 * time.Second,
		LoopInterval:      time.Second,
		HTTPListen:        "127.0.0.1:8068",
		LogLevel:          "info",
		LogOutput:         "stdout",
		Sim: SimConfig{
			Hardware:     true,
			DHCP:         true,
			Link:         "up",
			LeaseIP:      "192.168.1.120",
			LeaseGateway: "192.168.1.1",
			LeaseMask:    "255.255.255.0",
			LeaseDNS:     "192.168.1.1",
		},
	}
}

// LoadFromFile loads configuration from INI file
func (c *Config) LoadFromFile(filename string) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, filename)
	if err != nil {
		return fmt.Errorf("load config file %s: %w", filename, err)
	}
	c.Path = filename

	section := cfg.Section("")
	c.Interface = section.Key("interface").MustString(c.Interface)
	c.Driver = strings.ToLower(section.Key("driver").MustString(c.Driver))
	c.MAC = section.Key("mac").MustString(c.MAC)
	c.FallbackIP = section.Key("fallbackip").MustString(c.FallbackIP)
	c.Gateway = section.Key("gateway").MustString(c.Gateway)
	c.Subnet = section.Key("subnet").MustString(c.Subnet)
	c.DNS = section.Key("dns").MustString(c.DNS)
	c.DHCPTimeout = section.Key("dhcptimeout").MustDuration(c.DHCPTimeout)
	c.LinkCheckInterval = section.Key("linkcheckinterval").MustDuration(c.LinkCheckInterval)
	c.LoopInterval = section.Key("loopinterval").MustDuration(c.LoopInterval)
	c.MACDBFile = section.Key("macdbfile").MustString(c.MACDBFile)
	// An explicitly empty value turns these off
	if section.HasKey("resolvconf") {
		c.ResolvConf = section.Key("resolvconf").String()
	}
	if section.HasKey("httplisten") {
		c.HTTPListen = section.Key("httplisten").String()
	}
	c.LogLevel = section.Key("loglevel").MustString(c.LogLevel)
	c.LogOutput = section.Key("logoutput").MustString(c.LogOutput)

	sim := cfg.Section("sim")
	c.Sim.Hardware = sim.Key("hardware").MustBool(c.Sim.Hardware)
	c.Sim.DHCP = sim.Key("dhcp").MustBool(c.Sim.DHCP)
	c.Sim.Link = sim.Key("link").MustString(c.Sim.Link)
	c.Sim.LeaseIP = sim.Key("leaseip").MustString(c.Sim.LeaseIP)
	c.Sim.LeaseGateway = sim.Key("leasegateway").MustString(c.Sim.LeaseGateway)
	c.Sim.LeaseMask = sim.Key("leasemask").MustString(c.Sim.LeaseMask)
	c.Sim.LeaseDNS = sim.Key("leasedns").MustString(c.Sim.LeaseDNS)
	c.Sim.LeaseScript = sim.Key("leasescript").MustString(c.Sim.LeaseScript)
	c.Sim.AcquireDelay = sim.Key("acquiredelay").MustDuration(c.Sim.AcquireDelay)

	return nil
}

// LoadFromEnv loads configuration from NETBRINGUP_* environment variables
func (c *Config) LoadFromEnv() error {
	strs := map[string]*string{
		"INTERFACE":  &c.Interface,
		"DRIVER":     &c.Driver,
		"MAC":        &c.MAC,
		"FALLBACKIP": &c.FallbackIP,
		"GATEWAY":    &c.Gateway,
		"SUBNET":     &c.Subnet,
		"DNS":        &c.DNS,
		"MACDBFILE":  &c.MACDBFile,
		"RESOLVCONF": &c.ResolvConf,
		"HTTPLISTEN": &c.HTTPListen,
		"LOGLEVEL":   &c.LogLevel,
		"LOGOUTPUT":  &c.LogOutput,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	c.Driver = strings.ToLower(c.Driver)

	durations := map[string]*time.Duration{
		"DHCPTIMEOUT":       &c.DHCPTimeout,
		"LINKCHECKINTERVAL": &c.LinkCheckInterval,
		"LOOPINTERVAL":      &c.LoopInterval,
	}
	var errs []error
	for key, dst := range durations {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			continue
		}
		*dst = d
	}

	bools := map[string]*bool{
		"SIM_HARDWARE": &c.Sim.Hardware,
		"SIM_DHCP":     &c.Sim.DHCP,
	}
	for key, dst := range bools {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
			continue
		}
		*dst = b
	}
	if v := os.Getenv(EnvPrefix + "SIM_LINK"); v != "" {
		c.Sim.Link = v
	}

	return errors.Join(errs...)
}

// Network parses the addressing settings
func (c *Config) Network() (Network, error) {
	var n Network
	var err error

	if n.MAC, err = net.ParseMAC(c.MAC); err != nil {
		return n, fmt.Errorf("mac: %w", err)
	}
	if len(n.MAC) != 6 {
		return n, fmt.Errorf("mac: %q is not an ethernet address", c.MAC)
	}

	if n.FallbackIP, err = parseIPv4("fallbackip", c.FallbackIP); err != nil {
		return n, err
	}
	if n.FallbackIP == nil {
		return n, errors.New("fallbackip: required")
	}
	if n.Gateway, err = parseIPv4("gateway", c.Gateway); err != nil {
		return n, err
	}
	if n.DNS, err = parseIPv4("dns", c.DNS); err != nil {
		return n, err
	}

	mask, err := parseIPv4("subnet", c.Subnet)
	if err != nil {
		return n, err
	}
	if mask != nil {
		n.Subnet = net.IPMask(mask)
		if ones, bits := n.Subnet.Size(); ones == 0 && bits == 0 {
			return n, fmt.Errorf("subnet: %q is not a contiguous mask", c.Subnet)
		}
	}

	return n, nil
}

// parseIPv4 returns nil for an empty value
func parseIPv4(key, value string) (net.IP, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	ip := net.ParseIP(value).To4()
	if ip == nil {
		return nil, fmt.Errorf("%s: %q is not an IPv4 address", key, value)
	}
	return ip, nil
}

// Validate reports settings the daemon cannot run with
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Network(); err != nil {
		errs = append(errs, err)
	}

	switch c.Driver {
	case DriverNetlink, DriverSim:
	default:
		errs = append(errs, fmt.Errorf("driver: unknown flavor %q", c.Driver))
	}
	if c.Driver == DriverNetlink && c.Interface == "" {
		errs = append(errs, errors.New("interface: required for the netlink driver"))
	}

	if c.DHCPTimeout < 0 {
		errs = append(errs, fmt.Errorf("dhcptimeout: negative duration %s", c.DHCPTimeout))
	}
	if c.LoopInterval <= 0 {
		errs = append(errs, fmt.Errorf("loopinterval: must be positive, got %s", c.LoopInterval))
	}

	return errors.Join(errs...)
}

// New creates a new configuration instance. A missing file is not an
// error; the defaults and environment apply.
func New(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	// Load from file first
	if configFile != "" {
		if err := cfg.LoadFromFile(configFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg.Path = configFile
	}

	// Override with environment variables
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
