package qclient

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"slices"
	"time"

	"github.com/quic-go/qclient/internal/protocol"
	"github.com/quic-go/qclient/logging"
)

// Config contains all configuration data needed for a Client.
type Config struct {
	// Versions are the QUIC versions offered, highest-preferred first.
	// If not set, it uses all versions the package supports.
	Versions []Version
	// MaxClientHellos is the number of client hellos a logical connection may send.
	// Once it is exceeded while the server keeps rejecting statelessly,
	// Connect fails with a TooManyStatelessRejectsError.
	// If not set, protocol.DefaultMaxClientHellos is used.
	// If set to a negative value, a single client hello is sent and
	// a stateless reject is never retried.
	MaxClientHellos int
	// DisableStatelessRejectSupport disables recording requests sent before
	// handshake confirmation, and therefore their replay after a stateless reject.
	DisableStatelessRejectSupport bool
	// YieldAfterPackets and YieldAfterDuration bound how much work the packet
	// reader does inline before yielding to other work scheduled on the event loop.
	YieldAfterPackets  int
	YieldAfterDuration time.Duration
	// InitialReceiveBufferSize and InitialSendBufferSize are the socket
	// buffer sizes requested when the socket is created.
	InitialReceiveBufferSize int
	InitialSendBufferSize    int
	// ConnectionIDLength is the length of client-generated connection IDs.
	ConnectionIDLength int
	// StreamPriority is the priority requested for request streams.
	// If zero, protocol.DefaultStreamPriority is used.
	StreamPriority Priority
	// Rand is the entropy source for connection IDs.
	// If not set, crypto/rand is used.
	Rand io.Reader
	// CachedStates holds state learned about servers, such as the connection
	// IDs they designated for future connection attempts.
	// If not set, an LRU store local to the Client is used.
	CachedStates CachedStateStore
	// LocalAddr is the address the socket is bound to. If nil, a wildcard address is used.
	LocalAddr *net.UDPAddr
	// SocketFactory creates the datagram sockets. If not set, UDP sockets are used.
	SocketFactory SocketFactory
	// EventLoop is the loop the client runs on. If not set, a new loop is created.
	EventLoop *EventLoop
	Tracer    *logging.ClientTracer
	Logger    *slog.Logger
}

// Clone clones a Config
func (c *Config) Clone() *Config {
	copy := *c
	copy.Versions = slices.Clone(c.Versions)
	return &copy
}

func validateConfig(config *Config) error {
	if config == nil {
		return nil
	}
	if len(config.Versions) > 0 {
		if err := protocol.ValidateVersions(config.Versions); err != nil {
			return fmt.Errorf("invalid value for Config.Versions: %w", err)
		}
	}
	if config.YieldAfterPackets < 0 {
		return errors.New("invalid value for Config.YieldAfterPackets")
	}
	if config.YieldAfterDuration < 0 {
		return errors.New("invalid value for Config.YieldAfterDuration")
	}
	if config.ConnectionIDLength < 0 || config.ConnectionIDLength > protocol.MaxConnectionIDLen {
		return errors.New("invalid value for Config.ConnectionIDLength")
	}
	if config.InitialReceiveBufferSize < 0 || config.InitialSendBufferSize < 0 {
		return errors.New("invalid socket buffer size")
	}
	return nil
}

// populateConfig populates fields in the Config with their default values, if none are set.
// It may be called with nil.
func populateConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	versions := config.Versions
	if len(versions) == 0 {
		versions = protocol.SupportedVersions
	}
	maxClientHellos := config.MaxClientHellos
	if maxClientHellos == 0 {
		maxClientHellos = protocol.DefaultMaxClientHellos
	} else if maxClientHellos < 0 {
		maxClientHellos = 0
	}
	yieldAfterPackets := config.YieldAfterPackets
	if yieldAfterPackets == 0 {
		yieldAfterPackets = protocol.DefaultYieldAfterPackets
	}
	yieldAfterDuration := config.YieldAfterDuration
	if yieldAfterDuration == 0 {
		yieldAfterDuration = protocol.DefaultYieldAfterDuration
	}
	receiveBufferSize := config.InitialReceiveBufferSize
	if receiveBufferSize == 0 {
		receiveBufferSize = protocol.DesiredReceiveBufferSize
	}
	sendBufferSize := config.InitialSendBufferSize
	if sendBufferSize == 0 {
		sendBufferSize = protocol.DesiredSendBufferSize
	}
	connIDLen := config.ConnectionIDLength
	if connIDLen == 0 {
		connIDLen = protocol.DefaultConnectionIDLength
	}
	priority := config.StreamPriority
	if priority == 0 {
		priority = protocol.DefaultStreamPriority
	}
	random := config.Rand
	if random == nil {
		random = rand.Reader
	}
	cachedStates := config.CachedStates
	if cachedStates == nil {
		cachedStates = NewLRUCachedStateStore(protocol.MaxCachedStates, protocol.MaxServerDesignatedConnectionIDs)
	}
	socketFactory := config.SocketFactory
	if socketFactory == nil {
		socketFactory = &udpSocketFactory{logger: config.Logger}
	}
	loop := config.EventLoop
	if loop == nil {
		loop = NewEventLoop()
	}

	return &Config{
		Versions:                      slices.Clone(versions),
		MaxClientHellos:               maxClientHellos,
		DisableStatelessRejectSupport: config.DisableStatelessRejectSupport,
		YieldAfterPackets:             yieldAfterPackets,
		YieldAfterDuration:            yieldAfterDuration,
		InitialReceiveBufferSize:      receiveBufferSize,
		InitialSendBufferSize:         sendBufferSize,
		ConnectionIDLength:            connIDLen,
		StreamPriority:                priority,
		Rand:                          random,
		CachedStates:                  cachedStates,
		LocalAddr:                     config.LocalAddr,
		SocketFactory:                 socketFactory,
		EventLoop:                     loop,
		Tracer:                        config.Tracer,
		Logger:                        config.Logger,
	}
}
