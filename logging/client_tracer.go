// Package logging defines the tracing hooks of a client.
// This package should not be considered stable
package logging

import (
	"net"

	"github.com/quic-go/qclient/internal/protocol"
)

type (
	// A ConnectionID is a connection ID.
	ConnectionID = protocol.ConnectionID
	// A Version is a QUIC version number.
	Version = protocol.Version
)

// A ClientTracer records lifecycle events of a client.
// Any of the callbacks may be nil. They are invoked on the client's event loop.
type ClientTracer struct {
	// StartedConnectAttempt is called for every session the client creates.
	// attempt counts from 0 within one logical connection.
	StartedConnectAttempt func(attempt int, connID ConnectionID, versions []Version)
	// ReceivedStatelessReject is called when a session is replaced after a stateless reject.
	ReceivedStatelessReject func(attempt int, hellosSent int)
	// ReplayedRequests is called after requests sent before handshake
	// confirmation were resent on a new session.
	ReplayedRequests func(count int)
	// DroppedUnconfirmedRequests is called when handshake confirmation made
	// the requests recorded for replay unnecessary.
	DroppedUnconfirmedRequests func(count int)
	// Connected is called when Connect finished with an established connection.
	Connected func(hellosSent int)
	// ConnectFailed is called when Connect gave up.
	ConnectFailed func(err error, hellosSent int)
	MigratedSocket func(local net.Addr)
	// YieldedReadLoop is called whenever the packet reader yields to other work.
	YieldedReadLoop func()
	ReadError       func(err error)
	// Closed is called when the client disconnects.
	Closed func()
}
