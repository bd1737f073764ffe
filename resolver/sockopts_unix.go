//go:build linux || darwin

package resolver

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// dialRecvBuffer is the SO_RCVBUF size requested on every dialed
// transport socket so a burst of large responses does not get dropped at
// the kernel layer before the transport reads them (adapted from the
// teacher's udp_unix.go, which tunes a listening socket for
// SO_REUSEADDR/SO_REUSEPORT; here the same Control hook tunes a dialed
// socket instead).
const dialRecvBuffer = 1 << 20

func controlSetRecvBuffer(network, address string, c syscall.RawConn) (err error) {
	c.Control(func(fd uintptr) {
		err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, dialRecvBuffer)
	})
	return
}
