// ===== pkg/models/models.go =====
package models

import (
	"encoding/json"
	"net"
	"time"
)

// AddressingMode records how the active address was obtained
type AddressingMode int

const (
	ModeUnconfigured AddressingMode = iota
	ModeDynamic
	ModeStatic
)

func (m AddressingMode) String() string {
	switch m {
	case ModeDynamic:
		return "DHCP"
	case ModeStatic:
		return "Static"
	default:
		return "Unconfigured"
	}
}

// MarshalText renders the mode by name in JSON
func (m AddressingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// NetworkConfiguration is a live read of the interface configuration
type NetworkConfiguration struct {
	Address    net.IP     `json:"address"`
	Gateway    net.IP     `json:"gateway"`
	SubnetMask net.IPMask `json:"subnetMask"`
	DNS        net.IP     `json:"dns"`
}

// MarshalJSON renders every field in dotted-quad form; unset fields are
// reported as "0.0.0.0".
func (c NetworkConfiguration) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Address    string `json:"address"`
		Gateway    string `json:"gateway"`
		SubnetMask string `json:"subnetMask"`
		DNS        string `json:"dns"`
	}{
		Address:    dottedQuad(c.Address),
		Gateway:    dottedQuad(c.Gateway),
		SubnetMask: dottedQuad(net.IP(c.SubnetMask)),
		DNS:        dottedQuad(c.DNS),
	})
}

func dottedQuad(ip net.IP) string {
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return net.IPv4zero.String()
}

// Snapshot is the status read model published by the monitor
type Snapshot struct {
	BootID          string               `json:"bootId"`
	Interface       string               `json:"interface"`
	MAC             string               `json:"mac"`
	Vendor          *OUIEntry            `json:"vendor,omitempty"`
	Initialized     bool                 `json:"initialized"`
	Mode            AddressingMode       `json:"mode"`
	Link            LinkState            `json:"link"`
	Config          NetworkConfiguration `json:"config"`
	LastLinkCheck   time.Time            `json:"lastLinkCheck"`
	LinkCheckEvery  string               `json:"linkCheckInterval"`
	LastLeaseResult LeaseResult          `json:"lastLeaseResult"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// OUIEntry represents MAC address vendor information
type OUIEntry struct {
	OUI         string `json:"oui"`
	Private     bool   `json:"isPrivate"`
	Company     string `json:"companyName"`
	Address     string `json:"companyAddress"`
	CountryCode string `json:"countryCode"`
	BlockSize   string `json:"assignmentBlockSize"`
	Created     string `json:"dateCreated"`
	Updated     string `json:"dateUpdated"`
}

// LogEntry represents a log entry
type LogEntry struct {
	Timestamp time.Time `json:"when"`
	UnixTime  int64     `json:"utime"`
	Level     string    `json:"level"`
	Component string    `json:"component"`
	Message   string    `json:"message"`
}
