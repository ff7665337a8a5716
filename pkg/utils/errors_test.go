package utils

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCheckWarn(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	assert.False(t, CheckWarn(log, nil, "quiet"))
	assert.Empty(t, buf.String())

	assert.True(t, CheckWarn(log, errors.New("boom"), "MAC database unavailable"))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"message":"MAC database unavailable"`)
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ctx"))

	base := errors.New("no such device")
	err := WrapError(base, "netlink driver")
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "netlink driver: no such device", err.Error())
}
