package discovery

import (
	"fmt"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type the running server registers, so
	// the second device can find the page without typing an IP.
	ServiceType = "_https._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."
)

// Advertiser is a live mDNS registration. Shutdown withdraws it.
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise registers the server on the local network under the given
// instance name. The registration stays up until Shutdown.
func Advertise(instance string, port int) (*Advertiser, error) {
	srv, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port,
		[]string{"path=/"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	return &Advertiser{server: srv}, nil
}

// Shutdown withdraws the registration. Safe on a nil receiver so callers
// can hold an Advertiser only while one is live.
func (a *Advertiser) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	a.server = nil
}
