package models

// LinkState is the carrier state reported by a link-layer driver
type LinkState int

const (
	LinkUnknown LinkState = iota
	LinkUp
	LinkDown
)

func (s LinkState) String() string {
	switch s {
	case LinkUp:
		return "Connected"
	case LinkDown:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// MarshalText renders the link state by name in JSON
func (s LinkState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LeaseResult is the outcome of one lease maintenance call
type LeaseResult int

const (
	LeaseNone LeaseResult = iota
	LeaseRenewFailed
	LeaseRenewed
	LeaseRebindFailed
	LeaseRebound
)

func (r LeaseResult) String() string {
	switch r {
	case LeaseRenewFailed:
		return "renew-failed"
	case LeaseRenewed:
		return "renewed"
	case LeaseRebindFailed:
		return "rebind-failed"
	case LeaseRebound:
		return "rebound"
	default:
		return "none"
	}
}

// MarshalText renders the lease result by name in JSON
func (r LeaseResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Failed reports whether the lease result is a renew or rebind failure
func (r LeaseResult) Failed() bool {
	return r == LeaseRenewFailed || r == LeaseRebindFailed
}
