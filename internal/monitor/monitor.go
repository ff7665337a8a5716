// ===== internal/monitor/monitor.go =====
package monitor

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"netbringup/internal/bringup"
	"netbringup/internal/logger"
	"netbringup/internal/status"
	"netbringup/pkg/models"
)

// ErrNoHardware is reported when bring-up finds no ethernet controller
var ErrNoHardware = errors.New("ethernet hardware not found")

// Settings are the values that may change while the loop runs
type Settings struct {
	LinkCheckInterval time.Duration
	LogLevel          string
}

// Loader re-reads Settings after the config file changes
type Loader func() (Settings, error)

// Options configure a Monitor
type Options struct {
	Bringup      bringup.Options
	LoopInterval time.Duration
	Settings     Settings

	// ConfigPath is watched for changes when set; Load is then required.
	ConfigPath string
	Load       Loader
}

// Monitor owns the goroutine that drives the helper. Nothing else may
// call into the helper once Start has been called.
type Monitor struct {
	helper *bringup.Helper
	clock  bringup.Clock
	store  *status.Store
	log    zerolog.Logger
	opts   Options

	watcher  *fsnotify.Watcher
	reloadCh chan Settings
	errCh    chan error
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	started  bool
}

// New creates a new monitor instance
func New(helper *bringup.Helper, clock bringup.Clock, store *status.Store, opts Options) *Monitor {
	if clock == nil {
		clock = bringup.RealClock{}
	}
	if opts.LoopInterval <= 0 {
		opts.LoopInterval = time.Second
	}

	return &Monitor{
		helper:   helper,
		clock:    clock,
		store:    store,
		log:      logger.WithComponent("monitor"),
		opts:     opts,
		reloadCh: make(chan Settings, 1),
		errCh:    make(chan error, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// WithLogger replaces the component logger
func (m *Monitor) WithLogger(log zerolog.Logger) *Monitor {
	m.log = log
	return m
}

// Start watches the config file and launches the loop goroutine
func (m *Monitor) Start() error {
	if m.opts.ConfigPath != "" && m.opts.Load != nil {
		if err := m.startWatcher(); err != nil {
			// Bring-up must not depend on inotify being available.
			m.log.Warn().Err(err).Str("path", m.opts.ConfigPath).Msg("Config reload disabled")
		}
	}

	m.started = true
	go m.run()
	return nil
}

func (m *Monitor) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Editors replace files instead of writing them in place, so the
	// directory is watched and events are filtered by name.
	dir := filepath.Dir(m.opts.ConfigPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	m.watcher = watcher
	go m.watchConfig()
	return nil
}

func (m *Monitor) watchConfig() {
	target, _ := filepath.Abs(m.opts.ConfigPath)

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}

			name, _ := filepath.Abs(event.Name)
			if name != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			settings, err := m.opts.Load()
			if err != nil {
				m.log.Error().Err(err).Str("path", event.Name).Msg("Error reloading configuration")
				continue
			}
			m.Reload(settings)

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.log.Warn().Err(err).Msg("File watcher error")

		case <-m.stopCh:
			return
		}
	}
}

// Reload hands new settings to the loop goroutine. Only the most recent
// pending settings are kept.
func (m *Monitor) Reload(s Settings) {
	for {
		select {
		case m.reloadCh <- s:
			return
		default:
		}

		select {
		case <-m.reloadCh:
		default:
		}
	}
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	m.publish(false)

	if !m.helper.Initialize(m.opts.Bringup) {
		m.store.SetFatal(ErrNoHardware)
		m.errCh <- ErrNoHardware
		return
	}
	m.publish(true)

	ticker := m.clock.Ticker(m.opts.LoopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			m.helper.Maintain(m.opts.Settings.LinkCheckInterval)
			m.publish(true)

		case s := <-m.reloadCh:
			m.apply(s)
			m.publish(true)

		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) apply(s Settings) {
	if s.LinkCheckInterval != m.opts.Settings.LinkCheckInterval {
		m.log.Info().
			Dur("previous", m.opts.Settings.LinkCheckInterval).
			Dur("interval", s.LinkCheckInterval).
			Msg("Link check interval changed")
	}

	if s.LogLevel != "" && s.LogLevel != m.opts.Settings.LogLevel {
		if err := logger.SetLevelName(s.LogLevel); err != nil {
			m.log.Error().Err(err).Str("level", s.LogLevel).Msg("Ignoring log level")
			s.LogLevel = m.opts.Settings.LogLevel
		} else {
			m.log.Info().Str("level", s.LogLevel).Msg("Log level changed")
		}
	}

	m.opts.Settings = s
}

// publish copies the helper's state into the store
func (m *Monitor) publish(initialized bool) {
	interval := m.opts.Settings.LinkCheckInterval
	if interval <= 0 {
		interval = bringup.DefaultLinkCheckInterval
	}

	var cfg models.NetworkConfiguration
	if initialized {
		cfg = m.helper.Configuration()
	}

	m.store.Update(func(snap *models.Snapshot) {
		snap.BootID = m.helper.SessionID()
		snap.Initialized = initialized
		snap.Mode = m.helper.Mode()
		snap.Link = m.helper.LastObservation()
		snap.Config = cfg
		snap.LastLinkCheck = m.helper.LastLinkCheck()
		snap.LinkCheckEvery = interval.String()
		snap.LastLeaseResult = m.helper.LastLeaseResult()
		snap.UpdatedAt = m.clock.Now()
	})
}

// Fatal delivers the error that ended bring-up, if any
func (m *Monitor) Fatal() <-chan error {
	return m.errCh
}

// Done is closed when the loop goroutine has exited
func (m *Monitor) Done() <-chan struct{} {
	return m.doneCh
}

// Stop stops the loop and the config watcher and waits for the loop
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		if m.watcher != nil {
			m.watcher.Close()
		}
	})
	if m.started {
		<-m.doneCh
	}
}
