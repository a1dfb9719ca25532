package qclient

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/quic-go/qclient/internal/eventloop"
	"github.com/quic-go/qclient/internal/protocol"
)

// The ConnectionID identifies a connection attempt.
type ConnectionID = protocol.ConnectionID

// A Version is a QUIC version number.
type Version = protocol.Version

// A StreamID identifies a stream.
type StreamID = protocol.StreamID

// Priority is the priority requested for an outgoing stream.
type Priority = protocol.Priority

// The EventLoop is the cooperative scheduler a Client runs on.
// A Client and everything it owns must only be used from the goroutine driving its loop.
type EventLoop = eventloop.Loop

// NewEventLoop creates a new event loop.
func NewEventLoop() *EventLoop { return eventloop.New() }

// ServerID identifies the remote endpoint.
type ServerID struct {
	Host string
	Port uint16
	// PrivacyMode marks connections that must not share cached state with
	// non-private connections to the same host and port.
	PrivacyMode bool
}

func (s ServerID) String() string {
	hostPort := net.JoinHostPort(s.Host, strconv.Itoa(int(s.Port)))
	if s.PrivacyMode {
		return hostPort + "/private"
	}
	return hostPort
}

// A PacketWriter writes packets to the peer of a connected datagram socket.
type PacketWriter interface {
	WritePacket(b []byte) error
}

// A DatagramSocket is a connected datagram socket.
type DatagramSocket interface {
	// Read reads the next datagram into b.
	// If no datagram is available yet, it returns ErrIOPending and calls
	// callback on the event loop once the read completes.
	// Only one read may be outstanding at a time.
	Read(b []byte, callback func(n int, err error)) (int, error)
	Write(b []byte) error
	SetReceiveBufferSize(int) error
	SetSendBufferSize(int) error
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
	Close() error
}

// A SocketFactory creates datagram sockets bound to local (nil means a
// wildcard address) and connected to remote.
type SocketFactory interface {
	NewSocket(loop *EventLoop, local, remote *net.UDPAddr) (DatagramSocket, error)
}

// SessionParams are the parameters a session is created with.
type SessionParams struct {
	ConnectionID ConnectionID
	Server       ServerID
	Versions     []Version
	Writer       PacketWriter
	LocalAddr    net.Addr
	RemoteAddr   net.Addr
	Visitor      SessionVisitor
	Loop         *EventLoop
	Logger       *slog.Logger
}

// An Engine creates sessions. It owns the wire format, the cryptographic
// handshake, loss recovery and stream multiplexing.
type Engine interface {
	NewSession(*SessionParams) (Session, error)
}

// A Session is one connection attempt handled by an Engine.
type Session interface {
	Initialize() error
	StartHandshake() error

	IsEncryptionEstablished() bool
	IsHandshakeConfirmed() bool
	// IsConnected says if the connection is still open.
	IsConnected() bool
	// ConnectionError returns the error the session was closed with, or nil.
	ConnectionError() error
	NumSentClientHellos() int
	ConnectionID() ConnectionID

	// OpenStream opens an outgoing bidirectional stream.
	// The visitor is notified once the peer finished its side of the stream.
	OpenStream(Priority, StreamVisitor) (Stream, error)
	// ProcessDatagram hands a received datagram to the session.
	// The session must not retain data after returning.
	ProcessDatagram(local, peer net.Addr, data []byte)
	SetSelfAddress(net.Addr)
	SetWriter(PacketWriter)
	// Close gracefully closes the session. A nil error means no error.
	Close(error)
}

// A Stream is an outgoing request stream.
type Stream interface {
	StreamID() StreamID
	Write([]byte) (int, error)
	// Close closes the write direction of the stream.
	Close() error
}

// A SessionVisitor is notified about session events.
type SessionVisitor interface {
	OnHandshakeConfirmed()
	OnConnectionClosed(err error)
}

// A StreamVisitor is notified when a request stream completes.
type StreamVisitor interface {
	OnStreamComplete(id StreamID, response []byte, err error)
}

// A PacketVisitor is notified about the result of datagram reads.
type PacketVisitor interface {
	OnReadError(err error, socket DatagramSocket)
	// OnPacket handles a received datagram and says if reading should continue.
	OnPacket(data []byte, local, peer net.Addr) bool
}

// A Response is the result of a completed request stream.
type Response struct {
	StreamID StreamID
	Body     []byte
	Err      error
}

func (r *Response) String() string {
	if r.Err != nil {
		return fmt.Sprintf("stream %d: %s", r.StreamID, r.Err)
	}
	return fmt.Sprintf("stream %d: %d bytes", r.StreamID, len(r.Body))
}
