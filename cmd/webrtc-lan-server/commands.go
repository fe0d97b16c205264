package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wenzhi0209/webrtc-lan-server/internal/config"
	"github.com/wenzhi0209/webrtc-lan-server/internal/document"
	"github.com/wenzhi0209/webrtc-lan-server/internal/events"
	"github.com/wenzhi0209/webrtc-lan-server/internal/logging"
	"github.com/wenzhi0209/webrtc-lan-server/internal/logring"
	"github.com/wenzhi0209/webrtc-lan-server/internal/server"
	"github.com/wenzhi0209/webrtc-lan-server/internal/ui"
)

// stopTimeout bounds how long shutdown waits for the Stopped confirmation.
const stopTimeout = 10 * time.Second

var (
	configPath       string
	port             int
	bundlePath       string
	passphrase       string
	promptPassphrase bool
	documentPath     string
	interfaceName    string
	maxConns         int
	idleTimeout      time.Duration
	noAdvertise      bool
	logLevel         string
)

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: platform config dir)")
	cmd.Flags().IntVar(&port, "port", 0, "HTTPS listen port (default 8443)")
	cmd.Flags().StringVar(&bundlePath, "bundle", "", "Path to PKCS#12 identity bundle")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Bundle passphrase (prefer --prompt-passphrase)")
	cmd.Flags().BoolVar(&promptPassphrase, "prompt-passphrase", false, "Read the bundle passphrase from the terminal")
	cmd.Flags().StringVar(&documentPath, "document", "", "Path to the HTML page to serve (default web/index.html)")
	cmd.Flags().StringVar(&interfaceName, "interface", "", "WiFi interface to advertise (default per platform)")
	cmd.Flags().IntVar(&maxConns, "max-conns", 0, "Cap on concurrently handled connections")
	cmd.Flags().DurationVar(&idleTimeout, "idle-timeout", 0, "Close connections idle for this long")
	cmd.Flags().BoolVar(&noAdvertise, "no-advertise", false, "Disable mDNS advertisement")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; empty = silent)")
}

// loadConfig merges the config file with any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("bundle") {
		cfg.BundlePath = bundlePath
	}
	if cmd.Flags().Changed("passphrase") {
		cfg.Passphrase = passphrase
	}
	if cmd.Flags().Changed("document") {
		cfg.DocumentPath = documentPath
	}
	if cmd.Flags().Changed("interface") {
		cfg.InterfaceName = interfaceName
	}
	if cmd.Flags().Changed("max-conns") {
		cfg.MaxConns = maxConns
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.IdleTimeout = idleTimeout
	}
	if noAdvertise {
		cfg.Advertise = false
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if promptPassphrase {
		fmt.Fprint(os.Stderr, "Bundle passphrase: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to read passphrase: %w", err)
		}
		cfg.Passphrase = string(secret)
	}

	return cfg, nil
}

// buildController wires the shared core: logging, document, event hub,
// controller. Both commands run exactly this core and differ only in how
// they render its output.
func buildController(cfg *config.Config) (*server.Controller, *events.Hub, *logring.Ring) {
	hub := events.NewHub()
	ring := logring.New(cfg.LogCap)
	doc := document.Load(cfg.DocumentPath)
	ctrl := server.New(cfg, hub, doc)
	if doc.IsFallback() {
		hub.Publish(events.KindWarning, "Bundled page missing, serving fallback document")
	}
	return ctrl, hub, ring
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the server headless",
	Long: `Start the HTTPS page server and run until interrupted.

Events are printed to stdout; structured logs go through --log-level.`,
	Example: `  # Serve with defaults (port 8443, certs/server.p12, web/index.html)
  webrtc-lan-server serve

  # Custom bundle with a prompted passphrase
  webrtc-lan-server serve --bundle /secrets/server.p12 --prompt-passphrase

  # Debug logging on a different port
  webrtc-lan-server serve --port 9443 --log-level debug`,
	RunE: runServe,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the interactive dashboard",
	Long: `Open a terminal dashboard showing server state, the page URL, and the
most recent events, with keys to start and stop the server.`,
	RunE: runTUI,
}

func init() {
	addServerFlags(serveCmd)
	addServerFlags(tuiCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logging.Sync()

	ctrl, hub, ring := buildController(cfg)

	eventCh, cancel := hub.Subscribe()
	defer cancel()
	go func() {
		for e := range eventCh {
			ring.Append(e)
			fmt.Printf("%s [%s] %s\n", e.Time.Format("15:04:05"), e.Kind, e.Message)
		}
	}()

	stopped := make(chan struct{}, 1)
	ctrl.OnState(func(s server.Snapshot) {
		if s.State == server.StateStopped {
			select {
			case stopped <- struct{}{}:
			default:
			}
		}
	})

	ctrl.Start()
	if snap := ctrl.Snapshot(); snap.State == server.StateFailed {
		return fmt.Errorf("server failed to start: %s", snap.Reason)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	ctrl.Stop()
	select {
	case <-stopped:
	case <-time.After(stopTimeout):
		fmt.Fprintln(os.Stderr, "shutdown timeout, exiting anyway")
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The dashboard owns the terminal; zap stays silent unless the user
	// asked for a level, in which case output lands after the TUI exits.
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logging.Sync()

	ctrl, hub, ring := buildController(cfg)

	eventCh, cancel := hub.Subscribe()
	defer cancel()

	return ui.Run(ctrl, ring, eventCh)
}
