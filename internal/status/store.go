// Package status holds the read model served by the status surface.
//
// The monitor goroutine is the only writer. Readers get copies, so nothing
// they do can reach back into the helper or its driver.
package status

import (
	"net"
	"sync"

	"netbringup/pkg/models"
)

// Store is a mutex-guarded models.Snapshot
type Store struct {
	mu       sync.RWMutex
	snapshot models.Snapshot
	fatal    error
}

// NewStore seeds the store with identity fields that never change
func NewStore(base models.Snapshot) *Store {
	return &Store{snapshot: clone(base)}
}

// Update applies fn to the current snapshot under the write lock
func (s *Store) Update(fn func(*models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.snapshot)
}

// Snapshot returns a deep copy of the current snapshot
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.snapshot)
}

// SetFatal records the error that stopped bring-up
func (s *Store) SetFatal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fatal = err
}

// Healthy reports whether bring-up has completed without a fatal error
func (s *Store) Healthy() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Initialized && s.fatal == nil, s.fatal
}

func clone(snap models.Snapshot) models.Snapshot {
	out := snap
	out.Config = models.NetworkConfiguration{
		Address:    cloneIP(snap.Config.Address),
		Gateway:    cloneIP(snap.Config.Gateway),
		SubnetMask: net.IPMask(cloneIP(net.IP(snap.Config.SubnetMask))),
		DNS:        cloneIP(snap.Config.DNS),
	}
	if snap.Vendor != nil {
		vendor := *snap.Vendor
		out.Vendor = &vendor
	}
	return out
}

func cloneIP(ip net.IP) net.IP {
	if ip == nil {
		return nil
	}
	return append(net.IP(nil), ip...)
}
