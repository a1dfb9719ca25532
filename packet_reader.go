package qclient

import (
	"errors"
	"log/slog"
	"time"

	"github.com/quic-go/qclient/internal/eventloop"
	"github.com/quic-go/qclient/internal/protocol"
	"github.com/quic-go/qclient/internal/qerr"
	"github.com/quic-go/qclient/logging"
)

// The packetReader keeps a read outstanding on a socket and hands every
// datagram to its visitor. After yieldAfterPackets synchronously completed
// reads, or once yieldAfterDuration has elapsed, the next result is handled
// in a separate task, so that other work on the loop gets to run.
type packetReader struct {
	socket  DatagramSocket
	visitor PacketVisitor
	loop    *eventloop.Loop
	tracer  *logging.ClientTracer
	logger  *slog.Logger

	yieldAfterPackets  int
	yieldAfterDuration time.Duration

	buf            []byte
	readPending    bool
	numPacketsRead int
	yieldAfter     time.Time

	// the continuation scheduled when yielding
	deferred *eventloop.Task
	closed   bool
}

func newPacketReader(
	socket DatagramSocket,
	visitor PacketVisitor,
	loop *eventloop.Loop,
	yieldAfterPackets int,
	yieldAfterDuration time.Duration,
	tracer *logging.ClientTracer,
	logger *slog.Logger,
) *packetReader {
	return &packetReader{
		socket:             socket,
		visitor:            visitor,
		loop:               loop,
		tracer:             tracer,
		logger:             logger,
		yieldAfterPackets:  yieldAfterPackets,
		yieldAfterDuration: yieldAfterDuration,
		buf:                make([]byte, protocol.MaxPacketBufferSize),
	}
}

// StartReading issues a read, unless one is already outstanding.
func (r *packetReader) StartReading() {
	for {
		if r.closed || r.readPending {
			return
		}
		if r.numPacketsRead == 0 {
			r.yieldAfter = r.loop.Now().Add(r.yieldAfterDuration)
		}
		r.readPending = true
		n, err := r.socket.Read(r.buf, func(n int, err error) {
			// the socket might complete a read after the reader was closed
			if r.closed {
				return
			}
			r.OnReadComplete(n, err)
		})
		if errors.Is(err, qerr.ErrIOPending) {
			r.numPacketsRead = 0
			return
		}
		r.numPacketsRead++
		if r.numPacketsRead > r.yieldAfterPackets || r.loop.Now().After(r.yieldAfter) {
			r.numPacketsRead = 0
			if r.tracer != nil && r.tracer.YieldedReadLoop != nil {
				r.tracer.YieldedReadLoop()
			}
			r.deferred = r.loop.Post(func() {
				r.deferred = nil
				if r.closed {
					return
				}
				r.OnReadComplete(n, err)
			})
			return
		}
		if !r.processReadResult(n, err) {
			return
		}
	}
}

// OnReadComplete handles the result of a read and continues reading.
func (r *packetReader) OnReadComplete(n int, err error) {
	if r.processReadResult(n, err) {
		r.StartReading()
	}
}

// processReadResult says if reading should continue.
func (r *packetReader) processReadResult(n int, err error) bool {
	r.readPending = false
	if err == nil && n == 0 {
		err = qerr.ErrTransportClosed
	}
	if err != nil {
		r.logger.Debug("read failed", "error", err)
		r.visitor.OnReadError(err, r.socket)
		return false
	}
	return r.visitor.OnPacket(r.buf[:n], r.socket.LocalAddr(), r.socket.RemoteAddr())
}

// Close stops reading. A continuation scheduled by yielding becomes a no-op.
func (r *packetReader) Close() {
	r.closed = true
	r.deferred.Cancel()
	r.deferred = nil
}
