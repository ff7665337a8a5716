package mac

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ouiLines = `{"oui":"00:1A:2B","companyName":"Example Networks","companyAddress":"1 Main St","countryCode":"US"}
not json
{"oui":"","companyName":"no prefix"}
{"oui":"b8:27:eb","companyName":"Raspberry Pi Foundation","countryCode":"GB"}
`

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oui.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(ouiLines), 0644))

	db, err := NewDatabase(path, zerolog.Nop())
	require.NoError(t, err)
	return db
}

func TestLoadSkipsBadLines(t *testing.T) {
	assert.Equal(t, 2, newTestDatabase(t).Len())
}

func TestLookup(t *testing.T) {
	db := newTestDatabase(t)

	tests := []struct {
		mac     string
		company string
		private bool
	}{
		{"00:1a:2b:3c:4d:5e", "Example Networks", false},
		{"B8-27-EB-00-11-22", "Raspberry Pi Foundation", false},
		{"DE:AD:BE:EF:FE:ED", "Local/Privacy MAC", true},
		{"02:00:00:00:00:01", "Local/Privacy MAC", true},
		{"00:50:56:00:00:01", "UNKNOWN", false},
	}

	for _, tt := range tests {
		t.Run(tt.mac, func(t *testing.T) {
			entry := db.Lookup(tt.mac)
			require.NotNil(t, entry)
			assert.Equal(t, tt.company, entry.Company)
			assert.Equal(t, tt.private, entry.Private)
		})
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	db := newTestDatabase(t)

	db.Lookup("00:1A:2B:00:00:00").Company = "changed"
	assert.Equal(t, "Example Networks", db.Lookup("00:1A:2B:00:00:00").Company)

	db.Lookup("00:50:56:00:00:01").Company = "changed"
	assert.Equal(t, "UNKNOWN", db.Lookup("00:50:56:00:00:01").Company)
}

func TestLookupHardwareAddr(t *testing.T) {
	db := newTestDatabase(t)

	entry := db.LookupHardwareAddr(net.HardwareAddr{0xB8, 0x27, 0xEB, 1, 2, 3})
	assert.Equal(t, "GB", entry.CountryCode)
}

func TestNewDatabaseWithoutFile(t *testing.T) {
	db, err := NewDatabase("", zerolog.Nop())
	require.NoError(t, err)

	assert.Zero(t, db.Len())
	assert.True(t, db.Lookup("DE:AD:BE:EF:FE:ED").Private)
}

func TestNewDatabaseMissingFile(t *testing.T) {
	_, err := NewDatabase(filepath.Join(t.TempDir(), "absent.jsonl"), zerolog.Nop())
	assert.Error(t, err)
}
