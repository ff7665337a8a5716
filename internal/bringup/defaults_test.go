package bringup

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveGateway(t *testing.T) {
	tests := []struct {
		fallback string
		want     string
	}{
		{"192.168.1.100", "192.168.1.1"},
		{"192.168.1.1", "192.168.1.1"},
		{"10.0.0.50", "10.0.0.1"},
		{"10.20.30.255", "10.20.30.1"},
		{"172.16.5.0", "172.16.5.1"},
		{"1.2.3.4", "1.2.3.1"},
	}

	for _, tt := range tests {
		t.Run(tt.fallback, func(t *testing.T) {
			got := DeriveGateway(net.ParseIP(tt.fallback))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDeriveGateway_AllOctets(t *testing.T) {
	for d := 0; d < 256; d++ {
		fallback := net.IPv4(203, 0, 113, byte(d))
		assert.True(t, DeriveGateway(fallback).Equal(net.IPv4(203, 0, 113, 1)), "fallback %s", fallback)
	}
}

func TestResolveGateway(t *testing.T) {
	fallback := net.IPv4(192, 168, 10, 50)

	assert.Equal(t, "192.168.10.1", ResolveGateway(nil, fallback).String())
	assert.Equal(t, "192.168.10.1", ResolveGateway(net.IPv4zero, fallback).String())
	assert.Equal(t, "192.168.10.254", ResolveGateway(net.IPv4(192, 168, 10, 254), fallback).String())
}

func TestResolveDNS(t *testing.T) {
	gateways := []net.IP{
		net.IPv4(192, 168, 10, 1),
		net.IPv4(10, 0, 0, 1),
		net.IPv4(172, 31, 255, 254),
	}

	for _, gw := range gateways {
		assert.True(t, ResolveDNS(nil, gw).Equal(gw))
		assert.True(t, ResolveDNS(net.IPv4zero, gw).Equal(gw))
		assert.True(t, ResolveDNS(net.IPv4(1, 1, 1, 1), gw).Equal(net.IPv4(1, 1, 1, 1)))
	}
}

func TestResolveDNS_FollowsDerivedGateway(t *testing.T) {
	gateway := ResolveGateway(net.IPv4zero, net.IPv4(10, 0, 0, 50))
	assert.Equal(t, "10.0.0.1", ResolveDNS(net.IPv4zero, gateway).String())
}

func TestResolveSubnet(t *testing.T) {
	assert.Equal(t, DefaultSubnetMask, ResolveSubnet(nil))

	mask := net.IPv4Mask(255, 255, 0, 0)
	assert.Equal(t, mask, ResolveSubnet(mask))
}
