package quicgo

import (
	"errors"

	"github.com/quic-go/quic-go"

	"github.com/quic-go/qclient"
)

// errLocalClose is reported when the session was closed without an error.
var errLocalClose = errors.New("session closed")

// convertError maps a quic-go connection error to the client's error taxonomy.
// A server that refuses the connection, or resets it, before the handshake
// completed is treated as a stateless reject: it keeps no state for the
// attempt, and the client may retry with a fresh connection.
func convertError(err error, handshakeComplete bool) error {
	if err == nil {
		return nil
	}
	if !handshakeComplete {
		var transportErr *quic.TransportError
		if errors.As(err, &transportErr) && transportErr.Remote && transportErr.ErrorCode == quic.ConnectionRefused {
			return &qclient.StatelessRejectError{}
		}
		var resetErr *quic.StatelessResetError
		if errors.As(err, &resetErr) {
			return &qclient.StatelessRejectError{}
		}
	}
	return &qclient.HandshakeError{Remote: isRemote(err), Err: err}
}

func isRemote(err error) bool {
	var (
		transportErr   *quic.TransportError
		applicationErr *quic.ApplicationError
		resetErr       *quic.StatelessResetError
		versionErr     *quic.VersionNegotiationError
	)
	switch {
	case errors.As(err, &transportErr):
		return transportErr.Remote
	case errors.As(err, &applicationErr):
		return applicationErr.Remote
	case errors.As(err, &resetErr), errors.As(err, &versionErr):
		return true
	default:
		return false
	}
}
