package qclient

import (
	"errors"

	"github.com/quic-go/qclient/internal/eventloop"
	"github.com/quic-go/qclient/internal/qerr"
)

type (
	TransportSetupError          = qerr.TransportSetupError
	ReadError                    = qerr.ReadError
	HandshakeError               = qerr.HandshakeError
	StatelessRejectError         = qerr.StatelessRejectError
	TooManyStatelessRejectsError = qerr.TooManyStatelessRejectsError
	StreamCreationError          = qerr.StreamCreationError
)

var (
	// ErrIOPending is returned by DatagramSocket.Read when the read completes asynchronously.
	ErrIOPending = qerr.ErrIOPending
	// ErrTransportClosed is reported when a read completed without any data.
	ErrTransportClosed = qerr.ErrTransportClosed

	ErrNotInitialized   = errors.New("client not initialized")
	ErrAlreadyConnected = errors.New("client already connected")
	ErrNotConnected     = errors.New("client not connected")
	// ErrIdle is returned when waiting for an event that nothing scheduled on
	// the event loop can bring about anymore.
	ErrIdle = eventloop.ErrIdle

	// ErrAttempting is returned by setters that may only be used before connecting.
	ErrAttempting = errors.New("connection attempt in progress")
)

// IsStatelessReject says if err is (or wraps) a StatelessRejectError.
func IsStatelessReject(err error) bool { return qerr.IsStatelessReject(err) }
