//go:build windows

package resolver

import (
	"syscall"

	"golang.org/x/sys/windows"
)

const dialRecvBuffer = 1 << 20

func controlSetRecvBuffer(network, address string, c syscall.RawConn) (err error) {
	c.Control(func(fd uintptr) {
		err = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_RCVBUF, dialRecvBuffer)
	})
	return
}
