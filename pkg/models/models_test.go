package models

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkConfigurationJSON(t *testing.T) {
	cfg := NetworkConfiguration{
		Address:    net.IPv4(10, 0, 0, 50),
		Gateway:    net.IPv4(10, 0, 0, 1),
		SubnetMask: net.IPv4Mask(255, 255, 255, 0),
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"address":"10.0.0.50","gateway":"10.0.0.1","subnetMask":"255.255.255.0","dns":"0.0.0.0"}`, string(data))
}

func TestSnapshotJSONUsesNames(t *testing.T) {
	snap := Snapshot{
		Interface:       "eth0",
		Initialized:     true,
		Mode:            ModeStatic,
		Link:            LinkDown,
		LastLeaseResult: LeaseRebindFailed,
		UpdatedAt:       time.Unix(0, 0).UTC(),
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Static", decoded["mode"])
	assert.Equal(t, "Disconnected", decoded["link"])
	assert.Equal(t, "rebind-failed", decoded["lastLeaseResult"])
	assert.NotContains(t, decoded, "vendor")
}

func TestLeaseResultFailed(t *testing.T) {
	assert.True(t, LeaseRenewFailed.Failed())
	assert.True(t, LeaseRebindFailed.Failed())
	assert.False(t, LeaseNone.Failed())
	assert.False(t, LeaseRenewed.Failed())
	assert.False(t, LeaseRebound.Failed())
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "Unconfigured", ModeUnconfigured.String())
	assert.Equal(t, "DHCP", ModeDynamic.String())
	assert.Equal(t, "Connected", LinkUp.String())
	assert.Equal(t, "Unknown", LinkState(42).String())
	assert.Equal(t, "none", LeaseNone.String())
}
