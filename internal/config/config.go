package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "webrtc-lan-server"
	configFile = "config.yaml"
)

// Config collects every tunable of the server. The defaults reproduce the
// literals the original app hard-coded; lifting them here keeps the server
// core free of magic numbers.
type Config struct {
	// Port is the HTTPS listen port.
	Port int `yaml:"port"`
	// BundlePath locates the PKCS#12 identity bundle.
	BundlePath string `yaml:"bundle_path"`
	// Passphrase decrypts the bundle. The legacy default ships self-signed
	// throwaway credentials; anything real belongs in the config file with
	// restrictive permissions, or entered via --prompt-passphrase.
	Passphrase string `yaml:"passphrase"`
	// DocumentPath locates the HTML page served to every request. Empty
	// means web/index.html.
	DocumentPath string `yaml:"document_path,omitempty"`
	// InterfaceName is the WiFi interface advertised to peers. Empty means
	// the platform default (en0, wlan0, Wi-Fi).
	InterfaceName string `yaml:"interface_name,omitempty"`
	// LogCap bounds the in-memory log ring.
	LogCap int `yaml:"log_cap"`
	// MaxConns caps concurrently handled connections.
	MaxConns int `yaml:"max_conns"`
	// IdleTimeout bounds how long a connection may sit without sending a
	// request before it is closed.
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	// Advertise controls mDNS advertisement of the running server.
	Advertise bool `yaml:"advertise"`
	// LogLevel is the zap level; empty disables logging output.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the configuration matching the legacy application.
func Default() *Config {
	return &Config{
		Port:        8443,
		BundlePath:  "certs/server.p12",
		Passphrase:  "123456",
		LogCap:      100,
		MaxConns:    32,
		IdleTimeout: 10 * time.Second,
		Advertise:   true,
	}
}

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/webrtc-lan-server or $HOME/.config/webrtc-lan-server
//   - macOS: $HOME/.config/webrtc-lan-server
//   - Windows: %LOCALAPPDATA%\webrtc-lan-server
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration at path. A missing file is not an error:
// defaults are returned so first runs work without setup. Fields absent from
// the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories with
// user-only permissions. The file itself is 0600 because it may hold the
// bundle passphrase.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
