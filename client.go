package qclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"

	qslog "github.com/quic-go/qclient/internal/slog"
	"github.com/quic-go/qclient/logging"
)

// A Client maintains a single connection to a server.
// It retries the handshake after stateless rejects and replays requests
// that were sent before the handshake was confirmed on the rejected session.
//
// A Client is not safe for concurrent use. All methods must be called from
// the goroutine driving its event loop.
type Client struct {
	server     ServerID
	remoteAddr *net.UDPAddr
	versions   []Version
	engine     Engine
	config     *Config

	loop     *EventLoop
	ownsLoop bool
	tracer   *logging.ClientTracer
	logger   *slog.Logger

	connIDs connIDPolicy

	initialized bool
	socket      DatagramSocket
	writer      PacketWriter
	reader      *packetReader
	session     Session

	// attempting is true from the start of a connection attempt until Disconnect.
	// While it is set, the counters of the current session are part of the totals.
	attempting       bool
	numAttempts      int
	hellosSent       int
	statelessRejects int
	// the last lifecycle error, kept across session replacement
	connectionError error

	resend      resendQueue
	outstanding map[StreamID]struct{}
	latest      *Response
}

var (
	_ PacketVisitor  = &Client{}
	_ SessionVisitor = &Client{}
	_ StreamVisitor  = &Client{}
)

// NewClient creates a client for the server reachable at addr.
// The client must be initialized before connecting.
func NewClient(server ServerID, addr *net.UDPAddr, engine Engine, conf *Config) (*Client, error) {
	if addr == nil {
		return nil, errors.New("qclient: no server address")
	}
	if engine == nil {
		return nil, errors.New("qclient: no engine")
	}
	if err := validateConfig(conf); err != nil {
		return nil, err
	}
	ownsLoop := conf == nil || conf.EventLoop == nil
	config := populateConfig(conf)
	logger := config.Logger
	if logger == nil {
		logger = qslog.DefaultLogger
	}
	return &Client{
		server:     server,
		remoteAddr: addr,
		versions:   slices.Clone(config.Versions),
		engine:     engine,
		config:     config,
		loop:       config.EventLoop,
		ownsLoop:   ownsLoop,
		tracer:     config.Tracer,
		logger:     qslog.Component(logger, "client"),
		connIDs: connIDPolicy{
			states: config.CachedStates,
			rand:   config.Rand,
			length: config.ConnectionIDLength,
		},
		outstanding: make(map[StreamID]struct{}),
	}, nil
}

// EventLoop returns the loop the client runs on.
func (c *Client) EventLoop() *EventLoop { return c.loop }

// Initialize resets the counters and the connection error, and creates the socket.
// If the socket cannot be set up, a TransportSetupError is returned and the
// client stays uninitialized.
func (c *Client) Initialize() error {
	if c.initialized {
		return errors.New("qclient: already initialized")
	}
	c.numAttempts = 0
	c.hellosSent = 0
	c.statelessRejects = 0
	c.connectionError = nil
	c.attempting = false

	socket, err := c.createSocket(c.config.LocalAddr)
	if err != nil {
		return err
	}
	c.installSocket(socket)
	c.initialized = true
	c.logger.Debug("initialized", "local", socket.LocalAddr(), "remote", socket.RemoteAddr())
	return nil
}

func (c *Client) createSocket(local *net.UDPAddr) (DatagramSocket, error) {
	socket, err := c.config.SocketFactory.NewSocket(c.loop, local, c.remoteAddr)
	if err != nil {
		return nil, &TransportSetupError{Op: "dial", Err: err}
	}
	if err := socket.SetReceiveBufferSize(c.config.InitialReceiveBufferSize); err != nil {
		socket.Close()
		return nil, &TransportSetupError{Op: "set receive buffer size", Err: err}
	}
	if err := socket.SetSendBufferSize(c.config.InitialSendBufferSize); err != nil {
		socket.Close()
		return nil, &TransportSetupError{Op: "set send buffer size", Err: err}
	}
	return socket, nil
}

func (c *Client) installSocket(socket DatagramSocket) {
	c.socket = socket
	c.writer = &socketWriter{socket: socket}
	c.reader = newPacketReader(
		socket,
		c,
		c.loop,
		c.config.YieldAfterPackets,
		c.config.YieldAfterDuration,
		c.tracer,
		c.logger.With(slog.String(qslog.ComponentKey, "reader")),
	)
}

func (c *Client) releaseSocket() {
	if c.reader != nil {
		c.reader.Close()
	}
	if c.socket != nil {
		if err := c.socket.Close(); err != nil {
			c.logger.Debug("closing socket failed", "error", err)
		}
	}
	c.reader = nil
	c.socket = nil
	c.writer = nil
}

// Connect establishes a connection, retrying after stateless rejects until
// more than MaxClientHellos client hellos were sent. It says if the client
// is connected afterwards. The reason for a failure is available from
// ConnectionError.
//
// Requests sent before the handshake was confirmed on a statelessly rejected
// session are replayed once a new session is connected.
func (c *Client) Connect(ctx context.Context) bool {
	if !c.initialized {
		c.logger.Error("connect called before initialization")
		return false
	}
	// Failures of an earlier Connect don't apply to this one,
	// unless the hello budget is used up.
	var tooMany *TooManyStatelessRejectsError
	if !errors.As(c.connectionError, &tooMany) {
		c.connectionError = nil
	}
	for !c.Connected() && c.TotalHellosSent() <= c.config.MaxClientHellos {
		// a read error disconnects the client
		if !c.initialized {
			break
		}
		if err := c.StartConnect(); err != nil {
			c.connectionError = err
			break
		}
		c.reader.StartReading()

		session := c.session
		if err := c.loop.WaitUntil(ctx, func() bool {
			return session.IsEncryptionEstablished() || !session.IsConnected()
		}); err != nil {
			c.connectionError = fmt.Errorf("waiting for the handshake: %w", err)
			session.Close(c.connectionError)
			break
		}
		if !c.config.DisableStatelessRejectSupport && c.Connected() && c.resend.AwaitingReplay() {
			if err := c.replaySavedRequests(); err != nil {
				c.logger.Error("replaying requests failed", "error", err)
			}
		}
		// Anything but a stateless reject (including no error at all) ends
		// the attempt.
		if c.session != nil && !IsStatelessReject(c.session.ConnectionError()) {
			break
		}
	}

	if !c.Connected() && c.TotalHellosSent() > c.config.MaxClientHellos &&
		c.session != nil && IsStatelessReject(c.session.ConnectionError()) {
		c.connectionError = &TooManyStatelessRejectsError{HellosSent: c.TotalHellosSent()}
	}

	if c.Connected() {
		c.connectionError = nil
		c.logger.Info("connected", "hellos_sent", c.TotalHellosSent(), "connection_id", c.session.ConnectionID())
		if c.tracer != nil && c.tracer.Connected != nil {
			c.tracer.Connected(c.TotalHellosSent())
		}
		return true
	}
	err := c.ConnectionError()
	c.logger.Info("connecting failed", "error", err, "hellos_sent", c.TotalHellosSent())
	if c.tracer != nil && c.tracer.ConnectFailed != nil {
		c.tracer.ConnectFailed(err, c.TotalHellosSent())
	}
	return false
}

// StartConnect creates a new session and starts its handshake.
// If a previous session was statelessly rejected, the requests sent on it
// before handshake confirmation are scheduled for replay.
func (c *Client) StartConnect() error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if c.Connected() {
		return ErrAlreadyConnected
	}
	if c.attempting && c.session != nil {
		c.updateStats()
		err := c.session.ConnectionError()
		// the counters of the old session are part of the totals now
		c.session = nil
		// streams of the old session never complete
		clear(c.outstanding)
		if IsStatelessReject(err) {
			c.onStatelessReject(err)
		}
	}

	connID, err := c.connIDs.NextConnectionID(c.server)
	if err != nil {
		return fmt.Errorf("generating connection ID: %w", err)
	}
	session, err := c.engine.NewSession(&SessionParams{
		ConnectionID: connID,
		Server:       c.server,
		Versions:     slices.Clone(c.versions),
		Writer:       c.writer,
		LocalAddr:    c.socket.LocalAddr(),
		RemoteAddr:   c.socket.RemoteAddr(),
		Visitor:      c,
		Loop:         c.loop,
		Logger:       c.logger.With(slog.String(qslog.ComponentKey, "engine")),
	})
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	c.session = session
	c.attempting = true
	if err := session.Initialize(); err != nil {
		return fmt.Errorf("initializing session: %w", err)
	}

	c.logger.Info("starting connection attempt", "attempt", c.numAttempts, "connection_id", connID)
	if c.tracer != nil && c.tracer.StartedConnectAttempt != nil {
		c.tracer.StartedConnectAttempt(c.numAttempts, connID, c.versions)
	}
	c.numAttempts++
	if err := session.StartHandshake(); err != nil {
		return fmt.Errorf("starting handshake: %w", err)
	}
	return nil
}

func (c *Client) onStatelessReject(err error) {
	var reject *StatelessRejectError
	if errors.As(err, &reject) && len(reject.ServerDesignatedConnectionID) > 0 {
		c.config.CachedStates.LookupOrCreate(c.server).AddServerDesignatedConnectionID(
			ConnectionID(slices.Clone(reject.ServerDesignatedConnectionID)),
		)
	}
	if !c.config.DisableStatelessRejectSupport {
		c.resend.MarkForReplay()
	}
	c.logger.Info("received stateless reject", "attempt", c.numAttempts-1, "awaiting_replay", c.resend.NumAwaitingReplay())
	if c.tracer != nil && c.tracer.ReceivedStatelessReject != nil {
		c.tracer.ReceivedStatelessReject(c.numAttempts-1, c.TotalHellosSent())
	}
}

// updateStats folds the counters of the current session into the totals.
func (c *Client) updateStats() {
	c.hellosSent += c.session.NumSentClientHellos()
	if IsStatelessReject(c.session.ConnectionError()) {
		c.statelessRejects++
	}
}

// Disconnect closes the connection, drops all requests recorded for replay
// and closes the socket. The client must be initialized again before connecting.
func (c *Client) Disconnect() {
	if c.Connected() {
		c.session.Close(nil)
	}
	if c.attempting && c.session != nil {
		c.updateStats()
	}
	c.attempting = false
	c.resend.Clear()
	clear(c.outstanding)
	c.releaseSocket()
	if c.initialized {
		c.logger.Debug("disconnected")
		if c.tracer != nil && c.tracer.Closed != nil {
			c.tracer.Closed()
		}
	}
	c.initialized = false
}

// Close disconnects the client.
// It also drops all work scheduled on the event loop, unless the loop was passed in the Config.
func (c *Client) Close() error {
	c.Disconnect()
	if c.ownsLoop {
		c.loop.Close()
	}
	return nil
}

// Connected says if the current session's connection is open.
func (c *Client) Connected() bool {
	return c.session != nil && c.session.IsConnected()
}

// SendRequest sends a request on a new stream.
// If fin is set, the write direction of the stream is closed afterwards.
// If the stream cannot be opened, a StreamCreationError is returned.
func (c *Client) SendRequest(body []byte, fin bool) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	// Requests awaiting replay were submitted first.
	if !c.config.DisableStatelessRejectSupport && c.resend.AwaitingReplay() {
		if err := c.replaySavedRequests(); err != nil {
			return err
		}
	}
	return c.sendRequest(body, fin)
}

func (c *Client) sendRequest(body []byte, fin bool) error {
	str, err := c.session.OpenStream(c.config.StreamPriority, c)
	if err != nil {
		c.logger.Error("opening stream failed", "error", err)
		return &StreamCreationError{Err: err}
	}
	if _, err := str.Write(body); err != nil {
		return fmt.Errorf("writing request on stream %d: %w", str.StreamID(), err)
	}
	if fin {
		if err := str.Close(); err != nil {
			return fmt.Errorf("closing stream %d: %w", str.StreamID(), err)
		}
	}
	c.outstanding[str.StreamID()] = struct{}{}
	if !c.config.DisableStatelessRejectSupport {
		c.recordOptimisticSend(pendingRequest{
			body:       slices.Clone(body),
			fin:        fin,
			enqueuedAt: c.loop.Now(),
		})
	}
	return nil
}

// recordOptimisticSend remembers a request until the handshake is confirmed.
func (c *Client) recordOptimisticSend(r pendingRequest) {
	if c.session.IsHandshakeConfirmed() {
		c.discardUnconfirmed()
		return
	}
	c.resend.Append(r)
}

func (c *Client) discardUnconfirmed() {
	n := c.resend.NumUnconfirmed()
	c.resend.DiscardUnconfirmed()
	if n > 0 && c.tracer != nil && c.tracer.DroppedUnconfirmedRequests != nil {
		c.tracer.DroppedUnconfirmedRequests(n)
	}
}

// replaySavedRequests resends all requests awaiting replay in submission order.
func (c *Client) replaySavedRequests() error {
	requests := c.resend.DrainReplay()
	if len(requests) == 0 {
		return nil
	}
	c.logger.Info("replaying requests", "count", len(requests))
	var errs []error
	for _, r := range requests {
		if err := c.sendRequest(r.body, r.fin); err != nil {
			errs = append(errs, err)
		}
	}
	if c.tracer != nil && c.tracer.ReplayedRequests != nil {
		c.tracer.ReplayedRequests(len(requests) - len(errs))
	}
	return errors.Join(errs...)
}

// SendRequestAndWaitForResponse sends a request and pumps the event loop
// until no request stream is outstanding anymore.
// It returns the response of the stream that completed last.
func (c *Client) SendRequestAndWaitForResponse(ctx context.Context, body []byte, fin bool) (*Response, error) {
	if err := c.SendRequest(body, fin); err != nil {
		return nil, err
	}
	if err := c.WaitForResponses(ctx); err != nil {
		return nil, err
	}
	if c.latest == nil {
		return nil, c.ConnectionError()
	}
	return c.latest, nil
}

// WaitForResponses pumps the event loop until all request streams completed,
// or the connection is closed.
func (c *Client) WaitForResponses(ctx context.Context) error {
	return c.loop.WaitUntil(ctx, func() bool {
		return len(c.outstanding) == 0 || !c.Connected()
	})
}

// NumOutstandingRequests returns the number of request streams that did not complete yet.
func (c *Client) NumOutstandingRequests() int { return len(c.outstanding) }

// LatestResponse returns the response of the stream that completed last, or nil.
func (c *Client) LatestResponse() *Response { return c.latest }

// MigrateSocket moves the connection to a new socket bound to local
// (nil means a wildcard address). The session, including its connection ID,
// is kept. On failure, nothing is changed.
func (c *Client) MigrateSocket(local *net.UDPAddr) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	socket, err := c.createSocket(local)
	if err != nil {
		return err
	}
	c.releaseSocket()
	c.installSocket(socket)
	c.session.SetSelfAddress(socket.LocalAddr())
	c.session.SetWriter(c.writer)
	c.reader.StartReading()

	c.logger.Info("migrated socket", "local", socket.LocalAddr())
	if c.tracer != nil && c.tracer.MigratedSocket != nil {
		c.tracer.MigratedSocket(socket.LocalAddr())
	}
	return nil
}

// LocalAddr returns the local address of the current socket, or nil.
func (c *Client) LocalAddr() net.Addr {
	if c.socket == nil {
		return nil
	}
	return c.socket.LocalAddr()
}

// TotalHellosSent returns the number of client hellos sent since Initialize.
func (c *Client) TotalHellosSent() int {
	if c.attempting && c.session != nil {
		return c.hellosSent + c.session.NumSentClientHellos()
	}
	return c.hellosSent
}

// NumStatelessRejectsReceived returns the number of stateless rejects received since Initialize.
func (c *Client) NumStatelessRejectsReceived() int {
	if c.attempting && c.session != nil && IsStatelessReject(c.session.ConnectionError()) {
		return c.statelessRejects + 1
	}
	return c.statelessRejects
}

// ConnectionError returns the error that ended the last connection attempt:
// the lifecycle error if there is one, else the current session's error.
func (c *Client) ConnectionError() error {
	if c.connectionError != nil {
		return c.connectionError
	}
	if c.session != nil {
		return c.session.ConnectionError()
	}
	return nil
}

// ServerID returns the identity of the server.
func (c *Client) ServerID() ServerID { return c.server }

// SetServerID changes the server identity used for cached state.
// It fails once a connection attempt was started.
func (c *Client) SetServerID(server ServerID) error {
	if c.attempting {
		return ErrAttempting
	}
	c.server = server
	return nil
}

// SupportedVersions returns the versions offered, highest-preferred first.
func (c *Client) SupportedVersions() []Version { return slices.Clone(c.versions) }

// SetSupportedVersions changes the versions offered.
// It fails once a connection attempt was started.
func (c *Client) SetSupportedVersions(versions []Version) error {
	if c.attempting {
		return ErrAttempting
	}
	if len(versions) == 0 {
		return errors.New("qclient: no versions")
	}
	if err := validateConfig(&Config{Versions: versions}); err != nil {
		return err
	}
	c.versions = slices.Clone(versions)
	return nil
}

// OnPacket implements PacketVisitor.
func (c *Client) OnPacket(data []byte, local, peer net.Addr) bool {
	if c.session == nil {
		return false
	}
	c.logger.Debug("received packet", "len", len(data))
	c.session.ProcessDatagram(local, peer, data)
	return c.session.IsConnected()
}

// OnReadError implements PacketVisitor.
// A read error on the current socket disconnects the client.
func (c *Client) OnReadError(err error, socket DatagramSocket) {
	if socket != c.socket {
		return
	}
	c.logger.Error("read error", "error", err)
	if c.tracer != nil && c.tracer.ReadError != nil {
		c.tracer.ReadError(err)
	}
	c.connectionError = &ReadError{Err: err}
	c.Disconnect()
}

// OnHandshakeConfirmed implements SessionVisitor.
func (c *Client) OnHandshakeConfirmed() {
	c.logger.Debug("handshake confirmed")
	c.discardUnconfirmed()
}

// OnConnectionClosed implements SessionVisitor.
func (c *Client) OnConnectionClosed(err error) {
	c.logger.Debug("connection closed", "error", err)
}

// OnStreamComplete implements StreamVisitor.
func (c *Client) OnStreamComplete(id StreamID, response []byte, err error) {
	if _, ok := c.outstanding[id]; !ok {
		return
	}
	delete(c.outstanding, id)
	c.latest = &Response{StreamID: id, Body: response, Err: err}
}
