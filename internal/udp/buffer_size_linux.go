//go:build linux

package udp

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

func rawConnOf(c any) (syscall.RawConn, error) {
	conn, ok := c.(interface {
		SyscallConn() (syscall.RawConn, error)
	})
	if !ok {
		return nil, errors.New("doesn't have a SyscallConn")
	}
	rawConn, err := conn.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("couldn't get syscall.RawConn: %w", err)
	}
	return rawConn, nil
}

func sockoptInt(c any, opt int) (int, error) {
	rawConn, err := rawConnOf(c)
	if err != nil {
		return 0, err
	}
	var size int
	var serr error
	if err := rawConn.Control(func(fd uintptr) {
		size, serr = unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, opt)
	}); err != nil {
		return 0, err
	}
	return size, serr
}

func setSockoptInt(c any, opt, value int) error {
	rawConn, err := rawConnOf(c)
	if err != nil {
		return err
	}
	var serr error
	if err := rawConn.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, opt, value)
	}); err != nil {
		return err
	}
	return serr
}

func inspectReadBuffer(c any) (int, error)  { return sockoptInt(c, unix.SO_RCVBUF) }
func inspectWriteBuffer(c any) (int, error) { return sockoptInt(c, unix.SO_SNDBUF) }

// forceSetReceiveBuffer bypasses net.core.rmem_max. It requires CAP_NET_ADMIN.
func forceSetReceiveBuffer(c any, bytes int) error {
	return setSockoptInt(c, unix.SO_RCVBUFFORCE, bytes)
}

// forceSetSendBuffer bypasses net.core.wmem_max. It requires CAP_NET_ADMIN.
func forceSetSendBuffer(c any, bytes int) error {
	return setSockoptInt(c, unix.SO_SNDBUFFORCE, bytes)
}
