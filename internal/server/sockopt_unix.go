//go:build !windows

package server

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseAddr enables local-endpoint reuse so a quick stop/start cycle does
// not trip over sockets lingering in TIME_WAIT.
func reuseAddr(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
