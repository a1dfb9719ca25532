//go:build !linux

package udp

import "errors"

var errUnsupported = errors.New("not supported on this platform")

func inspectReadBuffer(any) (int, error)  { return 0, errUnsupported }
func inspectWriteBuffer(any) (int, error) { return 0, errUnsupported }

func forceSetReceiveBuffer(any, int) error { return errUnsupported }
func forceSetSendBuffer(any, int) error    { return errUnsupported }
