package discovery

import "testing"

func TestShutdownNilAdvertiser(t *testing.T) {
	// Callers hold a nil Advertiser whenever no registration is live;
	// Shutdown must tolerate that.
	var a *Advertiser
	a.Shutdown()
}

func TestShutdownTwice(t *testing.T) {
	a := &Advertiser{}
	a.Shutdown()
	a.Shutdown()
}
