package qerr

import (
	"errors"
	"fmt"
)

// A TransportSetupError occurs when the datagram socket cannot be created,
// bound, connected or configured.
type TransportSetupError struct {
	Op  string
	Err error
}

func (e *TransportSetupError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("transport setup failed: %s", e.Err)
	}
	return fmt.Sprintf("transport setup failed (%s): %s", e.Op, e.Err)
}

func (e *TransportSetupError) Unwrap() error { return e.Err }

func (e *TransportSetupError) Is(target error) bool {
	_, ok := target.(*TransportSetupError)
	return ok
}

// A ReadError is a receive failure on the datagram socket.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read error: %s", e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool {
	_, ok := target.(*ReadError)
	return ok
}

// A HandshakeError is any session failure other than a stateless reject.
type HandshakeError struct {
	Remote bool
	Err    error
}

func (e *HandshakeError) Error() string {
	var remote string
	if e.Remote {
		remote = "remote"
	} else {
		remote = "local"
	}
	if e.Err == nil {
		return fmt.Sprintf("handshake failed (%s)", remote)
	}
	return fmt.Sprintf("handshake failed (%s): %s", remote, e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

func (e *HandshakeError) Is(target error) bool {
	_, ok := target.(*HandshakeError)
	return ok
}

// A StatelessRejectError is returned when the server rejected the handshake
// without keeping any state for the connection. It is recoverable: the client
// retries with the parameters the server supplied.
type StatelessRejectError struct {
	// ServerDesignatedConnectionID is the connection ID the server asked
	// the client to use on the next attempt, if any.
	ServerDesignatedConnectionID []byte
}

func (e *StatelessRejectError) Error() string { return "handshake statelessly rejected" }

func (e *StatelessRejectError) Is(target error) bool {
	_, ok := target.(*StatelessRejectError)
	return ok
}

// A TooManyStatelessRejectsError is set once the client hello budget is
// exhausted while the server keeps rejecting statelessly.
type TooManyStatelessRejectsError struct {
	HellosSent int
}

func (e *TooManyStatelessRejectsError) Error() string {
	return fmt.Sprintf("too many stateless rejects (%d client hellos sent)", e.HellosSent)
}

func (e *TooManyStatelessRejectsError) Is(target error) bool {
	_, ok := target.(*TooManyStatelessRejectsError)
	return ok
}

// A StreamCreationError occurs when the session refuses to open an outgoing stream.
type StreamCreationError struct {
	Err error
}

func (e *StreamCreationError) Error() string {
	return fmt.Sprintf("failed to open outgoing stream: %s", e.Err)
}

func (e *StreamCreationError) Unwrap() error { return e.Err }

func (e *StreamCreationError) Is(target error) bool {
	_, ok := target.(*StreamCreationError)
	return ok
}

// IsStatelessReject says if err is (or wraps) a stateless reject.
func IsStatelessReject(err error) bool {
	if err == nil {
		return false
	}
	var rej *StatelessRejectError
	return errors.As(err, &rej)
}

// ErrIOPending is returned by a datagram socket read that will complete
// later through its callback.
var ErrIOPending = errors.New("read pending")

// ErrTransportClosed is reported when a read completes without data,
// i.e. the peer or the transport closed.
var ErrTransportClosed = errors.New("transport closed")
