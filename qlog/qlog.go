// Package qlog writes client lifecycle events as a qlog JSON-SEQ trace.
package qlog

import (
	"io"
	"net"
	"time"

	"github.com/quic-go/qclient/logging"
)

// A Tracer records the events of a client to an io.WriteCloser.
// It must be closed once the client is done.
type Tracer struct {
	*logging.ClientTracer
	w *writer
}

// NewClientTracer creates a new tracer that writes a qlog to w.
func NewClientTracer(w io.WriteCloser, title string) *Tracer {
	t := &Tracer{w: newWriter(w, title, time.Now())}
	go t.w.Run()
	t.ClientTracer = &logging.ClientTracer{
		StartedConnectAttempt: func(attempt int, connID logging.ConnectionID, versions []logging.Version) {
			t.record(&eventConnectAttemptStarted{
				Attempt:      attempt,
				ConnectionID: connID,
				Versions:     versions,
			})
		},
		ReceivedStatelessReject: func(attempt, hellosSent int) {
			t.record(&eventStatelessRejectReceived{Attempt: attempt, HellosSent: hellosSent})
		},
		ReplayedRequests: func(count int) {
			t.record(&eventRequestsReplayed{Count: count})
		},
		DroppedUnconfirmedRequests: func(count int) {
			t.record(&eventUnconfirmedRequestsDropped{Count: count})
		},
		Connected: func(hellosSent int) {
			t.record(&eventConnected{HellosSent: hellosSent})
		},
		ConnectFailed: func(err error, hellosSent int) {
			t.record(&eventConnectFailed{Err: err, HellosSent: hellosSent})
		},
		MigratedSocket: func(local net.Addr) {
			var addr string
			if local != nil {
				addr = local.String()
			}
			t.record(&eventSocketMigrated{Local: addr})
		},
		YieldedReadLoop: func() { t.record(&eventReadLoopYielded{}) },
		ReadError:       func(err error) { t.record(&eventReadError{Err: err}) },
		Closed:          func() { t.record(&eventClientClosed{}) },
	}
	return t
}

func (t *Tracer) record(details eventDetails) {
	t.w.RecordEvent(time.Now(), details)
}

// Close flushes all events and closes the underlying writer.
func (t *Tracer) Close() error { return t.w.Close() }
