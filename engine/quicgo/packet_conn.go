package quicgo

import (
	"net"
	"os"
	"sync"
	"time"

	"github.com/quic-go/qclient"
)

// maxQueuedDatagrams is the number of received datagrams buffered for
// quic-go's read loop. Datagrams arriving while the queue is full are dropped.
const maxQueuedDatagrams = 64

type datagram struct {
	data []byte
	peer net.Addr
}

// The packetConn is the net.PacketConn a quic.Transport runs on.
// Received datagrams are pushed by the session from the event loop,
// outgoing datagrams go to the writer it was last given.
// quic-go only ever sees the remote address the session was created with,
// so swapping the socket underneath is invisible to it.
type packetConn struct {
	remote net.Addr

	mutex    sync.Mutex
	writer   qclient.PacketWriter
	local    net.Addr
	deadline time.Time
	// closed when the read deadline changes
	deadlineChanged chan struct{}

	queue     chan datagram
	closeOnce sync.Once
	closed    chan struct{}
}

var _ net.PacketConn = &packetConn{}

func newPacketConn(w qclient.PacketWriter, local, remote net.Addr) *packetConn {
	return &packetConn{
		remote:          remote,
		writer:          w,
		local:           local,
		deadlineChanged: make(chan struct{}),
		queue:           make(chan datagram, maxQueuedDatagrams),
		closed:          make(chan struct{}),
	}
}

// deliver queues a copy of data. It reports false if the datagram was dropped.
func (c *packetConn) deliver(data []byte) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.queue <- datagram{data: append([]byte(nil), data...), peer: c.remote}:
		return true
	default:
		return false
	}
}

func (c *packetConn) ReadFrom(p []byte) (int, net.Addr, error) {
	for {
		select {
		case <-c.closed:
			return 0, nil, net.ErrClosed
		default:
		}
		c.mutex.Lock()
		deadline := c.deadline
		changed := c.deadlineChanged
		c.mutex.Unlock()

		var timeout <-chan time.Time
		if !deadline.IsZero() {
			d := time.Until(deadline)
			if d <= 0 {
				return 0, nil, os.ErrDeadlineExceeded
			}
			timeout = time.After(d)
		}
		select {
		case <-c.closed:
			return 0, nil, net.ErrClosed
		case dg := <-c.queue:
			return copy(p, dg.data), dg.peer, nil
		case <-timeout:
			return 0, nil, os.ErrDeadlineExceeded
		case <-changed:
		}
	}
}

func (c *packetConn) WriteTo(p []byte, _ net.Addr) (int, error) {
	select {
	case <-c.closed:
		return 0, net.ErrClosed
	default:
	}
	c.mutex.Lock()
	w := c.writer
	c.mutex.Unlock()
	if w == nil {
		return 0, net.ErrClosed
	}
	if err := w.WritePacket(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *packetConn) setWriter(w qclient.PacketWriter) {
	c.mutex.Lock()
	c.writer = w
	c.mutex.Unlock()
}

func (c *packetConn) setLocalAddr(addr net.Addr) {
	c.mutex.Lock()
	c.local = addr
	c.mutex.Unlock()
}

func (c *packetConn) LocalAddr() net.Addr {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.local
}

func (c *packetConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *packetConn) SetDeadline(t time.Time) error { return c.SetReadDeadline(t) }

func (c *packetConn) SetReadDeadline(t time.Time) error {
	c.mutex.Lock()
	c.deadline = t
	close(c.deadlineChanged)
	c.deadlineChanged = make(chan struct{})
	c.mutex.Unlock()
	return nil
}

// Writes complete synchronously on the event loop's socket.
func (c *packetConn) SetWriteDeadline(time.Time) error { return nil }
