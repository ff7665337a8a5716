package netlinkdev

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResolvConf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolv.conf")
	require.NoError(t, os.WriteFile(path, []byte("nameserver 9.9.9.9\n"), 0644))

	err := writeResolvConf(path, []net.IP{net.IPv4(10, 0, 0, 1), nil, net.IPv4zero, net.IPv4(1, 1, 1, 1)})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# generated by netbringup\nnameserver 10.0.0.1\nnameserver 1.1.1.1\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteResolvConf_MissingDir(t *testing.T) {
	err := writeResolvConf(filepath.Join(t.TempDir(), "nope", "resolv.conf"), []net.IP{net.IPv4(10, 0, 0, 1)})
	assert.Error(t, err)
}
