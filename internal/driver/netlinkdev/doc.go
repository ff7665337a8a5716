// Package netlinkdev drives a real Linux ethernet interface.
//
// Link state and address configuration go through rtnetlink; leases are
// obtained and kept alive with a DHCPv4 client bound to the interface.
// The driver needs CAP_NET_ADMIN and CAP_NET_RAW.
package netlinkdev

import "time"

// Config selects the interface and where resolver settings are written
type Config struct {
	Interface string

	// ResolvConf is rewritten with the active DNS server when set.
	ResolvConf string

	// RetryInterval spaces out renew and rebind attempts after a failure.
	RetryInterval time.Duration
}
