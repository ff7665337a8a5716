package main

import (
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWaitForExitSurvivesServerFailure(t *testing.T) {
	sigChan := make(chan os.Signal, 1)
	fatal := make(chan error, 1)
	serverErr := make(chan error, 1)
	serverErr <- errors.New("listen tcp 127.0.0.1:8068: bind: address already in use")

	done := make(chan int, 1)
	go func() { done <- waitForExit(zerolog.Nop(), sigChan, fatal, serverErr) }()

	select {
	case code := <-done:
		t.Fatalf("returned %d after a status server failure", code)
	case <-time.After(50 * time.Millisecond):
	}

	sigChan <- syscall.SIGTERM
	assert.Equal(t, 0, <-done)
}

func TestWaitForExitOnFatal(t *testing.T) {
	fatal := make(chan error, 1)
	fatal <- errors.New("ethernet hardware not found")

	assert.Equal(t, 1, waitForExit(zerolog.Nop(), nil, fatal, nil))
}
