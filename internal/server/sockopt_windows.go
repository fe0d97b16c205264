//go:build windows

package server

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// reuseAddr enables local-endpoint reuse so a quick stop/start cycle does
// not trip over sockets lingering in TIME_WAIT.
func reuseAddr(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
