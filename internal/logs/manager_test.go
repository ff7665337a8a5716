package logs

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCapturesZerologEvents(t *testing.T) {
	m := NewManager()
	log := zerolog.New(m).With().Timestamp().Str("component", "bringup").Logger()

	log.Warn().Err(fmt.Errorf("no offer")).Msg("DHCP failed")
	log.Info().Str("ip", "10.0.0.50").Msg("Network configured")

	entries := m.GetLogs()
	require.Len(t, entries, 2)

	assert.Equal(t, "warn", entries[0].Level)
	assert.Equal(t, "bringup", entries[0].Component)
	assert.Equal(t, "DHCP failed: no offer", entries[0].Message)
	assert.WithinDuration(t, time.Now(), entries[0].Timestamp, time.Minute)
	assert.Equal(t, entries[0].Timestamp.UnixMilli(), entries[0].UnixTime)

	assert.Equal(t, "Network configured", entries[1].Message)
}

func TestManagerKeepsLast100(t *testing.T) {
	m := NewManager()
	log := zerolog.New(m)

	for i := 0; i < maxLogEntries+25; i++ {
		log.Info().Msgf("event %d", i)
	}

	entries := m.GetLogs()
	require.Len(t, entries, maxLogEntries)
	assert.Equal(t, "event 25", entries[0].Message)
	assert.Equal(t, fmt.Sprintf("event %d", maxLogEntries+24), entries[len(entries)-1].Message)
}

func TestManagerAcceptsPlainLines(t *testing.T) {
	m := NewManager()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	n, err := m.Write([]byte("not json\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	_, err = m.Write([]byte("   \n"))
	require.NoError(t, err)

	entries := m.GetLogs()
	require.Len(t, entries, 1)
	assert.Equal(t, "not json", entries[0].Message)
	assert.Equal(t, fixed, entries[0].Timestamp)
	assert.Empty(t, entries[0].Level)
}

func TestManagerGetLogsReturnsCopies(t *testing.T) {
	m := NewManager()
	_, _ = m.Write([]byte(`{"level":"info","message":"one"}`))

	entries := m.GetLogs()
	entries[0].Message = "changed"

	assert.Equal(t, "one", m.GetLogs()[0].Message)
}

func TestManagerConcurrentWriters(t *testing.T) {
	m := NewManager()
	log := zerolog.New(m)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				log.Info().Msg("tick")
				_ = m.GetLogs()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, m.GetLogs(), maxLogEntries)
}
