package quicgo

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"

	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/logging"

	"github.com/quic-go/qclient"
)

var (
	errNotInitialized = errors.New("quicgo: session not initialized")
	errNotEstablished = errors.New("quicgo: encryption not established")
	errSessionClosed  = errors.New("quicgo: session closed")
)

// A session is one quic-go connection attempt.
// Except for the goroutines it starts, it is only used on the event loop.
// The goroutines report back by injecting into the loop, and hold the loop
// while they are running.
type session struct {
	params          qclient.SessionParams
	tlsConf         *tls.Config
	quicConf        *quic.Config
	maxResponseSize int64
	logger          *slog.Logger

	conn      *packetConn
	transport *quic.Transport
	ctx       context.Context
	cancel    context.CancelFunc

	qconn      quic.EarlyConnection
	hellosSent int

	started   bool
	encrypted bool
	confirmed bool
	closed    bool
	err       error
}

var _ qclient.Session = &session{}

func newSession(
	p *qclient.SessionParams,
	tlsConf *tls.Config,
	quicConf *quic.Config,
	maxResponseSize int64,
	logger *slog.Logger,
) *session {
	return &session{
		params:          *p,
		tlsConf:         tlsConf,
		quicConf:        quicConf,
		maxResponseSize: maxResponseSize,
		logger:          logger,
	}
}

func (s *session) Initialize() error {
	if s.conn != nil {
		return errors.New("quicgo: session already initialized")
	}
	s.conn = newPacketConn(s.params.Writer, s.params.LocalAddr, s.params.RemoteAddr)
	s.transport = &quic.Transport{
		Conn:                  s.conn,
		ConnectionIDGenerator: &connIDGenerator{first: s.params.ConnectionID},
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return nil
}

func (s *session) StartHandshake() error {
	if s.transport == nil {
		return errNotInitialized
	}
	if s.closed {
		return errSessionClosed
	}
	if s.started {
		return errors.New("quicgo: handshake already started")
	}
	s.started = true
	s.hellosSent++
	s.logger.Debug("starting handshake", "connection_id", s.params.ConnectionID, "remote", s.params.RemoteAddr)

	conf := s.quicConf.Clone()
	conf.Tracer = s.wrapTracer(conf.Tracer)
	loop := s.params.Loop
	release := loop.Hold()
	go func() {
		qconn, err := s.transport.DialEarly(s.ctx, s.params.RemoteAddr, s.tlsConf, conf)
		loop.Inject(func() { s.onDialed(qconn, err) })
		release()
	}()
	return nil
}

// wrapTracer counts the client hellos quic-go resends after a Retry.
func (s *session) wrapTracer(
	next func(context.Context, logging.Perspective, quic.ConnectionID) *logging.ConnectionTracer,
) func(context.Context, logging.Perspective, quic.ConnectionID) *logging.ConnectionTracer {
	loop := s.params.Loop
	return func(ctx context.Context, p logging.Perspective, id quic.ConnectionID) *logging.ConnectionTracer {
		tracer := &logging.ConnectionTracer{
			// called on a quic-go goroutine while the dial holds the loop
			ReceivedRetry: func(*logging.Header) {
				loop.Inject(func() {
					if !s.closed {
						s.hellosSent++
					}
				})
			},
		}
		if next == nil {
			return tracer
		}
		if t := next(ctx, p, id); t != nil {
			return logging.NewMultiplexedConnectionTracer(tracer, t)
		}
		return tracer
	}
}

func (s *session) onDialed(qconn quic.EarlyConnection, err error) {
	if s.closed {
		if qconn != nil {
			qconn.CloseWithError(0, "")
		}
		return
	}
	if err != nil {
		s.onClosed(err)
		return
	}
	s.qconn = qconn
	s.encrypted = true
	s.logger.Debug("encryption established", "version", qconn.ConnectionState().Version)

	loop := s.params.Loop
	release := loop.Hold()
	go func() {
		defer release()
		select {
		case <-qconn.HandshakeComplete():
			loop.Inject(s.onHandshakeComplete)
		case <-qconn.Context().Done():
		}
		<-qconn.Context().Done()
		cause := context.Cause(qconn.Context())
		loop.Inject(func() { s.onClosed(cause) })
	}()
}

func (s *session) onHandshakeComplete() {
	if s.closed {
		return
	}
	s.confirmed = true
	s.logger.Debug("handshake confirmed")
	s.params.Visitor.OnHandshakeConfirmed()
}

func (s *session) onClosed(err error) {
	if s.closed {
		return
	}
	s.closed = true
	s.err = convertError(err, s.encrypted)
	s.logger.Debug("connection closed", "error", s.err)
	s.shutdown()
	s.params.Visitor.OnConnectionClosed(s.err)
}

func (s *session) IsEncryptionEstablished() bool { return s.encrypted }
func (s *session) IsHandshakeConfirmed() bool    { return s.confirmed }
func (s *session) IsConnected() bool             { return s.conn != nil && !s.closed }
func (s *session) ConnectionError() error        { return s.err }
func (s *session) NumSentClientHellos() int      { return s.hellosSent }

func (s *session) ConnectionID() qclient.ConnectionID { return s.params.ConnectionID }

// OpenStream opens a bidirectional stream.
// quic-go doesn't prioritize streams, so the priority is ignored.
func (s *session) OpenStream(_ qclient.Priority, v qclient.StreamVisitor) (qclient.Stream, error) {
	if s.closed {
		return nil, errSessionClosed
	}
	if s.qconn == nil {
		return nil, errNotEstablished
	}
	str, err := s.qconn.OpenStream()
	if err != nil {
		return nil, err
	}
	id := qclient.StreamID(str.StreamID())
	loop := s.params.Loop
	release := loop.Hold()
	go func() {
		data, err := readResponse(str, s.maxResponseSize)
		loop.Inject(func() { v.OnStreamComplete(id, data, err) })
		release()
	}()
	return &stream{str: str, id: id}, nil
}

func readResponse(r io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return data, err
	}
	if int64(len(data)) > maxSize {
		return data[:maxSize], ErrResponseTooLarge
	}
	return data, nil
}

func (s *session) ProcessDatagram(_, _ net.Addr, data []byte) {
	if s.conn == nil || s.closed {
		return
	}
	if !s.conn.deliver(data) {
		s.logger.Debug("dropping datagram", "len", len(data))
	}
}

func (s *session) SetSelfAddress(addr net.Addr) {
	if s.conn != nil {
		s.conn.setLocalAddr(addr)
	}
}

func (s *session) SetWriter(w qclient.PacketWriter) {
	s.params.Writer = w
	if s.conn != nil {
		s.conn.setWriter(w)
	}
}

func (s *session) Close(err error) {
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	if s.qconn != nil {
		var (
			code quic.ApplicationErrorCode
			msg  string
		)
		if err != nil {
			code = 1
			msg = err.Error()
		}
		s.qconn.CloseWithError(code, msg)
	}
	s.shutdown()
}

func (s *session) shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.conn != nil {
		s.conn.Close()
	}
	if s.transport != nil {
		s.transport.Close()
	}
}

type stream struct {
	str quic.Stream
	id  qclient.StreamID
}

var _ qclient.Stream = &stream{}

func (s *stream) StreamID() qclient.StreamID  { return s.id }
func (s *stream) Write(b []byte) (int, error) { return s.str.Write(b) }
func (s *stream) Close() error                { return s.str.Close() }
