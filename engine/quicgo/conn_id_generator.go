package quicgo

import (
	"sync"

	"github.com/quic-go/quic-go"

	"github.com/quic-go/qclient"
	"github.com/quic-go/qclient/internal/protocol"
)

// The connIDGenerator hands out the connection ID chosen by the client
// for the first connection ID quic-go requests, and random IDs of the
// same length after that.
type connIDGenerator struct {
	mutex sync.Mutex
	first qclient.ConnectionID
	used  bool
}

var _ quic.ConnectionIDGenerator = &connIDGenerator{}

func (g *connIDGenerator) GenerateConnectionID() (quic.ConnectionID, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if !g.used || len(g.first) == 0 {
		g.used = true
		return quic.ConnectionIDFromBytes(g.first), nil
	}
	id, err := protocol.GenerateConnectionID(nil, len(g.first))
	if err != nil {
		return quic.ConnectionID{}, err
	}
	return quic.ConnectionIDFromBytes(id), nil
}

func (g *connIDGenerator) ConnectionIDLen() int { return len(g.first) }
