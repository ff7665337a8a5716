package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"netbringup/internal/bringup"
	"netbringup/internal/config"
	"netbringup/internal/logger"
	"netbringup/internal/logs"
	"netbringup/internal/mac"
	"netbringup/internal/monitor"
	"netbringup/internal/status"
	"netbringup/internal/web"
	"netbringup/pkg/models"
	"netbringup/pkg/utils"
)

const (
	defaultConfigFile = "/etc/netbringup.ini"
)

var (
	sha1ver   string
	buildTime string
	repoName  string
)

func main() {
	configFile := flag.String("config", defaultConfigFile, "path to the INI configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	os.Exit(run(*configFile, *debug))
}

func run(configFile string, debug bool) int {
	// Load configuration
	cfg, err := config.New(configFile)
	if err != nil {
		logger.Error().Err(err).Str("path", configFile).Msg("Failed to load configuration")
		return 2
	}

	logManager := logs.NewManager()
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Debug:  debug,
		Output: cfg.LogOutput,
	}, logManager); err != nil {
		logger.Error().Err(err).Msg("Failed to initialize logger")
		return 2
	}

	log := logger.WithComponent("main")
	log.Info().
		Str("repo", repoName).
		Str("build", sha1ver).
		Str("time", buildTime).
		Str("driver", cfg.Driver).
		Str("interface", cfg.Interface).
		Msg("Starting netbringup")

	network, err := cfg.Network()
	if err != nil {
		log.Error().Err(err).Msg("Invalid network configuration")
		return 2
	}

	// Vendor lookup is informational only
	macDB, err := mac.NewDatabase(cfg.MACDBFile, logger.WithComponent("mac"))
	if utils.CheckWarn(log, err, "MAC database unavailable") {
		macDB, _ = mac.NewDatabase("", logger.WithComponent("mac"))
	}
	vendor := macDB.LookupHardwareAddr(network.MAC)
	log.Info().
		Str("mac", utils.NormalizeMAC(network.MAC.String())).
		Str("vendor", vendor.Company).
		Bool("private", vendor.Private).
		Msg("Interface identity")

	driver, err := buildDriver(cfg, logger.WithComponent("driver"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create driver")
		return 1
	}

	store := status.NewStore(models.Snapshot{
		Interface: cfg.Interface,
		MAC:       utils.NormalizeMAC(network.MAC.String()),
		Vendor:    vendor,
	})

	helper := bringup.New(driver, bringup.RealClock{}, logger.WithComponent("bringup"))

	mon := monitor.New(helper, bringup.RealClock{}, store, monitor.Options{
		Bringup: bringup.Options{
			MAC:         network.MAC,
			FallbackIP:  network.FallbackIP,
			Gateway:     network.Gateway,
			SubnetMask:  network.Subnet,
			DNS:         network.DNS,
			DHCPTimeout: cfg.DHCPTimeout,
		},
		LoopInterval: cfg.LoopInterval,
		Settings:     settingsFrom(cfg),
		ConfigPath:   cfg.Path,
		Load:         reloadSettings(cfg.Path),
	})
	if err := mon.Start(); err != nil {
		log.Error().Err(err).Msg("Failed to start monitor")
		return 1
	}
	defer mon.Stop()

	// Initialize web server
	var webServer *web.Server
	serverErr := make(chan error, 1)
	if cfg.HTTPListen != "" {
		webServer = web.NewServer(cfg.HTTPListen, store, logManager, logger.WithComponent("web"))
		go func() {
			serverErr <- webServer.Start()
		}()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	code := waitForExit(log, sigChan, mon.Fatal(), serverErr)

	if webServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		utils.CheckWarn(log, webServer.Shutdown(ctx), "HTTP server shutdown")
	}

	return code
}

// waitForExit blocks until a signal or a fatal bring-up error. A failed
// status server is logged and does not end the process.
func waitForExit(log zerolog.Logger, sigChan <-chan os.Signal, fatal, serverErr <-chan error) int {
	for {
		select {
		case sig := <-sigChan:
			log.Info().Stringer("signal", sig).Msg("Shutting down...")
			return 0
		case err := <-fatal:
			log.Error().Err(err).Msg("Network bring-up failed")
			return 1
		case err := <-serverErr:
			if err != nil {
				log.Error().Err(err).Msg("HTTP server failed, continuing without status API")
			}
			serverErr = nil
		}
	}
}

func settingsFrom(cfg *config.Config) monitor.Settings {
	return monitor.Settings{
		LinkCheckInterval: cfg.LinkCheckInterval,
		LogLevel:          cfg.LogLevel,
	}
}

// reloadSettings re-reads the whole configuration but only hands back the
// values that can change at runtime
func reloadSettings(path string) monitor.Loader {
	return func() (monitor.Settings, error) {
		cfg, err := config.New(path)
		if err != nil {
			return monitor.Settings{}, err
		}
		return settingsFrom(cfg), nil
	}
}
