package utils

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPToIntRoundTrip(t *testing.T) {
	ip := net.ParseIP("192.168.10.50")

	n := IPToInt(ip)
	assert.Equal(t, uint32(0xC0A80A32), n)
	assert.True(t, IntToIP(n).Equal(ip))
}

func TestIPToIntNonIPv4(t *testing.T) {
	assert.Equal(t, uint32(0), IPToInt(net.ParseIP("2001:db8::1")))
	assert.Equal(t, uint32(0), IPToInt(nil))
}

func TestIsUnset(t *testing.T) {
	assert.True(t, IsUnset(nil))
	assert.True(t, IsUnset(net.IPv4zero))
	assert.True(t, IsUnset(net.IPv4(0, 0, 0, 0)))
	assert.False(t, IsUnset(net.IPv4(10, 0, 0, 1)))
}

func TestIsPrivateMAC(t *testing.T) {
	local, _ := net.ParseMAC("de:ed:ba:fe:fe:c3")
	global, _ := net.ParseMAC("00:1a:2b:3c:4d:5e")

	assert.True(t, IsPrivateMAC(local))
	assert.False(t, IsPrivateMAC(global))
	assert.False(t, IsPrivateMAC(nil))
}

func TestFormatMask(t *testing.T) {
	assert.Equal(t, "255.255.255.0", FormatMask(net.CIDRMask(24, 32)))
	assert.Equal(t, "255.255.0.0", FormatMask(net.IPv4Mask(255, 255, 0, 0)))
	assert.Equal(t, "0.0.0.0", FormatMask(nil))
}

func TestFormatIP(t *testing.T) {
	assert.Equal(t, "0.0.0.0", FormatIP(nil))
	assert.Equal(t, "10.0.0.1", FormatIP(net.IPv4(10, 0, 0, 1)))
}

func TestNormalizeMAC(t *testing.T) {
	assert.Equal(t, "DE:AD:BE:EF:FE:ED", NormalizeMAC("de-ad-be-ef-fe-ed"))
	assert.Equal(t, "00:1A:2B:3C:4D:5E", NormalizeMAC("001a.2b3c.4d5e"))
	assert.Equal(t, "00:1A:2B", NormalizeMAC("00:1a:2b"))
}
