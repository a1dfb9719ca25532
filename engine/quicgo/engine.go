// Package quicgo implements the client's session engine on top of quic-go.
//
// Every session runs its own quic.Transport. The transport reads from and
// writes to a packet conn that is fed by the client's event loop, so the
// client keeps ownership of the socket and can replace it underneath a
// running connection.
package quicgo

import (
	"crypto/tls"
	"errors"
	"log/slog"

	"github.com/quic-go/quic-go"

	"github.com/quic-go/qclient"
	"github.com/quic-go/qclient/internal/protocol"
)

// DefaultALPN is negotiated if the TLS config doesn't name any protocol.
const DefaultALPN = "h3"

// DefaultMaxResponseSize is the maximum number of bytes read from a request stream.
const DefaultMaxResponseSize = 1 << 20

// ErrResponseTooLarge is reported for responses exceeding Config.MaxResponseSize.
var ErrResponseTooLarge = errors.New("response too large")

// Config configures the Engine.
type Config struct {
	// TLSConfig is used for every session. ServerName defaults to the server's host.
	TLSConfig *tls.Config
	// QUICConfig is used for every session. Its Versions are overwritten by
	// the versions the client offers.
	QUICConfig *quic.Config
	// MaxResponseSize limits the response read from a request stream.
	// If zero, DefaultMaxResponseSize is used.
	MaxResponseSize int64
}

// The Engine creates quic-go backed sessions.
type Engine struct {
	tlsConf         *tls.Config
	quicConf        *quic.Config
	maxResponseSize int64
}

var _ qclient.Engine = &Engine{}

// NewEngine creates a new Engine.
// The configs are cloned, later changes don't affect the Engine.
func NewEngine(conf *Config) *Engine {
	if conf == nil {
		conf = &Config{}
	}
	e := &Engine{
		tlsConf:         &tls.Config{},
		quicConf:        &quic.Config{},
		maxResponseSize: conf.MaxResponseSize,
	}
	if conf.TLSConfig != nil {
		e.tlsConf = conf.TLSConfig.Clone()
	}
	if conf.QUICConfig != nil {
		e.quicConf = conf.QUICConfig.Clone()
	}
	if e.maxResponseSize == 0 {
		e.maxResponseSize = DefaultMaxResponseSize
	}
	return e
}

// NewSession creates a session for one connection attempt.
func (e *Engine) NewSession(p *qclient.SessionParams) (qclient.Session, error) {
	if p.Loop == nil {
		return nil, errors.New("quicgo: no event loop")
	}
	if p.RemoteAddr == nil {
		return nil, errors.New("quicgo: no remote address")
	}
	if p.Visitor == nil {
		return nil, errors.New("quicgo: no session visitor")
	}
	tlsConf := e.tlsConf.Clone()
	if tlsConf.ServerName == "" {
		tlsConf.ServerName = p.Server.Host
	}
	if len(tlsConf.NextProtos) == 0 {
		tlsConf.NextProtos = []string{DefaultALPN}
	}
	quicConf := e.quicConf.Clone()
	versions, err := convertVersions(p.Versions)
	if err != nil {
		return nil, err
	}
	quicConf.Versions = versions

	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return newSession(p, tlsConf, quicConf, e.maxResponseSize, logger), nil
}

func convertVersions(versions []qclient.Version) ([]quic.Version, error) {
	if len(versions) == 0 {
		return nil, nil
	}
	converted := make([]quic.Version, 0, len(versions))
	for _, v := range versions {
		switch v {
		case protocol.Version1:
			converted = append(converted, quic.Version1)
		case protocol.Version2:
			converted = append(converted, quic.Version2)
		default:
			return nil, errors.New("quicgo: unsupported version: " + v.String())
		}
	}
	return converted, nil
}
