// Package udp implements the connected datagram socket the client reads
// from and writes to. Reads are served from datagrams a background
// goroutine injects into the event loop, so a read either completes
// synchronously with a queued datagram or later through its callback.
package udp

import (
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/quic-go/qclient/internal/eventloop"
	"github.com/quic-go/qclient/internal/qerr"
)

// maxQueuedDatagrams bounds the datagrams held while no read is outstanding.
const maxQueuedDatagrams = 256

// A Socket is a connected UDP socket driven by an event loop.
// Apart from the background reader, it is only used on the loop goroutine.
type Socket struct {
	loop   *eventloop.Loop
	conn   *net.UDPConn
	logger *slog.Logger

	queued  []*datagramBuffer
	readErr error

	pendingBuf      []byte
	pendingCallback func(int, error)

	closed     bool
	releaseRun func()
}

// Dial creates a UDP socket bound to local (nil picks a wildcard address)
// and connected to remote, and starts reading from it.
func Dial(loop *eventloop.Loop, local, remote *net.UDPAddr, logger *slog.Logger) (*Socket, error) {
	if remote == nil {
		return nil, errors.New("no remote address")
	}
	network := "udp4"
	if remote.IP.To4() == nil {
		network = "udp6"
	}
	conn, err := net.DialUDP(network, local, remote)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Socket{
		loop:       loop,
		conn:       conn,
		logger:     logger,
		releaseRun: loop.Hold(),
	}
	go s.run()
	return s, nil
}

func (s *Socket) run() {
	defer s.releaseRun()
	for {
		buf := getDatagramBuffer()
		n, err := s.conn.Read(buf.Data)
		if err != nil {
			buf.Release()
			s.loop.Inject(func() { s.deliverError(err) })
			return
		}
		if n == 0 {
			buf.Release()
			continue
		}
		buf.Data = buf.Data[:n]
		s.loop.Inject(func() { s.deliver(buf) })
	}
}

func (s *Socket) deliver(buf *datagramBuffer) {
	if s.closed {
		buf.Release()
		return
	}
	if cb := s.pendingCallback; cb != nil {
		n := copy(s.pendingBuf, buf.Data)
		buf.Release()
		s.pendingBuf, s.pendingCallback = nil, nil
		cb(n, nil)
		return
	}
	if len(s.queued) >= maxQueuedDatagrams {
		s.logger.Debug("dropping datagram, receive queue full", "size", len(buf.Data))
		buf.Release()
		return
	}
	s.queued = append(s.queued, buf)
}

func (s *Socket) deliverError(err error) {
	if s.closed {
		return
	}
	s.logger.Debug("socket read failed", "error", err)
	if cb := s.pendingCallback; cb != nil {
		s.pendingBuf, s.pendingCallback = nil, nil
		cb(0, err)
		return
	}
	s.readErr = err
}

// Read reads the next datagram into b. If a datagram is queued, it
// completes synchronously. Otherwise it returns qerr.ErrIOPending and
// invokes callback on the loop goroutine once a datagram (or an error)
// arrives. Only one read may be outstanding.
func (s *Socket) Read(b []byte, callback func(n int, err error)) (int, error) {
	if s.closed {
		return 0, net.ErrClosed
	}
	if len(s.queued) > 0 {
		buf := s.queued[0]
		s.queued[0] = nil
		s.queued = s.queued[1:]
		n := copy(b, buf.Data)
		buf.Release()
		return n, nil
	}
	if s.readErr != nil {
		return 0, s.readErr
	}
	if s.pendingCallback != nil {
		return 0, errors.New("read already outstanding")
	}
	s.pendingBuf = b
	s.pendingCallback = callback
	return 0, qerr.ErrIOPending
}

// Write sends b to the connected peer.
func (s *Socket) Write(b []byte) error {
	_, err := s.conn.Write(b)
	return err
}

// SetReceiveBufferSize requests a receive buffer of the given size. If the
// kernel grants less, it tries to force the size, which requires privileges.
func (s *Socket) SetReceiveBufferSize(size int) error {
	if err := s.conn.SetReadBuffer(size); err != nil {
		return fmt.Errorf("setting receive buffer size: %w", err)
	}
	// The kernel doubles this value (to allow space for bookkeeping overhead).
	if actual, err := inspectReadBuffer(s.conn); err == nil && actual < size {
		if err := forceSetReceiveBuffer(s.conn, size); err != nil {
			s.logger.Debug("failed to force receive buffer size", "requested", size, "actual", actual, "error", err)
		}
	}
	return nil
}

// SetSendBufferSize requests a send buffer of the given size.
func (s *Socket) SetSendBufferSize(size int) error {
	if err := s.conn.SetWriteBuffer(size); err != nil {
		return fmt.Errorf("setting send buffer size: %w", err)
	}
	if actual, err := inspectWriteBuffer(s.conn); err == nil && actual < size {
		if err := forceSetSendBuffer(s.conn, size); err != nil {
			s.logger.Debug("failed to force send buffer size", "requested", size, "actual", actual, "error", err)
		}
	}
	return nil
}

func (s *Socket) LocalAddr() net.Addr  { return s.conn.LocalAddr() }
func (s *Socket) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

// Close closes the socket. An outstanding read callback is never invoked.
func (s *Socket) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pendingBuf, s.pendingCallback = nil, nil
	for _, buf := range s.queued {
		buf.Release()
	}
	s.queued = nil
	return s.conn.Close()
}
