package netinfo

import (
	"net"
	"runtime"
)

// Iface is one entry in the interface table handed to a Resolver: the
// interface name, whether it is up, and its addresses.
type Iface struct {
	Name  string
	Up    bool
	Addrs []net.Addr
}

// EnumerateFunc produces the current interface table. The default reads the
// kernel's table; tests substitute a fixed one.
type EnumerateFunc func() ([]Iface, error)

// Resolver selects the local IPv4 address other devices on the WiFi segment
// can reach. It never blocks and never fails hard: any enumeration problem
// degrades to "no address found".
type Resolver struct {
	// InterfaceName is the platform's primary WiFi interface (en0, wlan0,
	// ...). Empty means DefaultInterface().
	InterfaceName string
	// Enumerate overrides interface enumeration; nil means the system table.
	Enumerate EnumerateFunc
}

// DefaultInterface returns the conventional WiFi interface name for the
// current platform.
func DefaultInterface() string {
	switch runtime.GOOS {
	case "darwin", "ios":
		return "en0"
	case "windows":
		return "Wi-Fi"
	default:
		return "wlan0"
	}
}

// Resolve returns the IPv4 address of the configured WiFi interface, or
// ok=false when the interface is down, absent, or has no IPv4 address.
// Callers fall back to a loopback URL; this is not an error condition.
func (r *Resolver) Resolve() (string, bool) {
	name := r.InterfaceName
	if name == "" {
		name = DefaultInterface()
	}

	enumerate := r.Enumerate
	if enumerate == nil {
		enumerate = systemInterfaces
	}

	ifaces, err := enumerate()
	if err != nil {
		return "", false
	}

	for _, iface := range ifaces {
		if iface.Name != name || !iface.Up {
			continue
		}
		for _, addr := range iface.Addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return ip4.String(), true
			}
		}
	}
	return "", false
}

func systemInterfaces() ([]Iface, error) {
	sys, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Iface, 0, len(sys))
	for _, iface := range sys {
		// Address lookup failures on one interface do not disqualify the rest.
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		out = append(out, Iface{
			Name:  iface.Name,
			Up:    iface.Flags&net.FlagUp != 0,
			Addrs: addrs,
		})
	}
	return out, nil
}
