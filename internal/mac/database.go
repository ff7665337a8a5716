// ===== internal/mac/database.go =====
package mac

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"netbringup/pkg/models"
	"netbringup/pkg/utils"
)

// Database handles MAC address OUI lookups
type Database struct {
	cache map[string]*models.OUIEntry
	mu    sync.RWMutex
	log   zerolog.Logger
}

var (
	unknownEntry = models.OUIEntry{
		OUI:     "00:00:00",
		Company: "UNKNOWN",
		Address: "UNKNOWN",
	}

	privateEntry = models.OUIEntry{
		Private: true,
		Company: "Local/Privacy MAC",
		Address: "UNKNOWN",
	}
)

// NewDatabase creates a MAC database. With an empty filename only private
// and unknown MACs are recognised.
func NewDatabase(filename string, log zerolog.Logger) (*Database, error) {
	db := &Database{
		cache: make(map[string]*models.OUIEntry),
		log:   log,
	}

	if filename == "" {
		return db, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open MAC database: %w", err)
	}
	defer file.Close()

	count, err := db.load(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read MAC database: %w", err)
	}

	db.log.Debug().Int("entries", count).Str("file", filename).Msg("Loaded MAC database")
	return db, nil
}

// load reads JSON lines of OUI entries; malformed lines are skipped
func (db *Database) load(r io.Reader) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	scanner := bufio.NewScanner(r)
	count := 0
	for scanner.Scan() {
		var entry models.OUIEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if entry.OUI == "" {
			continue
		}

		prefix := strings.ToUpper(entry.OUI)
		db.cache[prefix] = &entry
		count++
	}

	return count, scanner.Err()
}

// Lookup finds OUI information for a MAC address in "AA:BB:CC:DD:EE:FF"
// form. It never returns nil.
func (db *Database) Lookup(mac string) *models.OUIEntry {
	mac = utils.NormalizeMAC(mac)

	db.mu.RLock()
	defer db.mu.RUnlock()

	// Try cache with progressively shorter prefixes
	for i := len(mac); i > 0; i-- {
		if entry, exists := db.cache[mac[0:i]]; exists {
			found := *entry
			return &found
		}
	}

	if hw, err := net.ParseMAC(mac); err == nil && utils.IsPrivateMAC(hw) {
		entry := privateEntry
		entry.OUI = mac
		return &entry
	}

	entry := unknownEntry
	return &entry
}

// LookupHardwareAddr is Lookup for a parsed address
func (db *Database) LookupHardwareAddr(mac net.HardwareAddr) *models.OUIEntry {
	return db.Lookup(mac.String())
}

// Len returns the number of loaded OUI entries
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.cache)
}
