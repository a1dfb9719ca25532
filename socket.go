package qclient

import (
	"log/slog"
	"net"

	qslog "github.com/quic-go/qclient/internal/slog"
	"github.com/quic-go/qclient/internal/udp"
)

// The udpSocketFactory creates connected UDP sockets.
type udpSocketFactory struct {
	logger *slog.Logger
}

var _ SocketFactory = &udpSocketFactory{}

func (f *udpSocketFactory) NewSocket(loop *EventLoop, local, remote *net.UDPAddr) (DatagramSocket, error) {
	logger := f.logger
	if logger == nil {
		logger = qslog.DefaultLogger
	}
	s, err := udp.Dial(loop, local, remote, qslog.Component(logger, "udp"))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// The socketWriter writes packets to the peer of a socket.
type socketWriter struct {
	socket DatagramSocket
}

var _ PacketWriter = &socketWriter{}

func (w *socketWriter) WritePacket(b []byte) error { return w.socket.Write(b) }
