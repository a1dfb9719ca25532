package qclient

import (
	"io"

	"github.com/quic-go/qclient/internal/protocol"
)

// The connIDPolicy selects the connection ID for a new connection attempt.
type connIDPolicy struct {
	states CachedStateStore
	rand   io.Reader
	length int
}

// NextConnectionID returns the next connection ID the server designated for
// this client, or a freshly generated random one if there is none.
func (p *connIDPolicy) NextConnectionID(server ServerID) (ConnectionID, error) {
	if id := p.states.LookupOrCreate(server).PopServerDesignatedConnectionID(); id != nil {
		return id, nil
	}
	return protocol.GenerateConnectionID(p.rand, p.length)
}
