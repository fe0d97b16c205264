// Webrtc-lan-server turns this machine into a minimal single-port HTTPS
// server that serves one static WebRTC signaling page to browsers on the
// same local network. Browsers require a secure context for peer-to-peer
// media APIs, which is why plain HTTP will not do.
//
// Usage:
//
//	webrtc-lan-server serve [flags]    headless server
//	webrtc-lan-server tui [flags]      interactive dashboard
//
// See 'webrtc-lan-server serve --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wenzhi0209/webrtc-lan-server/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "webrtc-lan-server",
	Short: "Single-page HTTPS server for LAN WebRTC",
	Long: `A minimal HTTPS server that serves one static HTML page to browsers on the
same WiFi network.

The page carries WebRTC signaling scripts that browsers only run in a secure
context, so the server terminates TLS with a certificate bundle you provide.
Every request, regardless of method or path, receives the same page and the
connection is closed.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("webrtc-lan-server %s\n", version.Full())
	},
}
