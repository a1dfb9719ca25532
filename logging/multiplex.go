package logging

import "net"

// NewMultiplexedClientTracer creates a new client tracer that multiplexes events to multiple tracers.
func NewMultiplexedClientTracer(tracers ...*ClientTracer) *ClientTracer {
	if len(tracers) == 0 {
		return nil
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &ClientTracer{
		StartedConnectAttempt: func(attempt int, connID ConnectionID, versions []Version) {
			for _, t := range tracers {
				if t.StartedConnectAttempt != nil {
					t.StartedConnectAttempt(attempt, connID, versions)
				}
			}
		},
		ReceivedStatelessReject: func(attempt int, hellosSent int) {
			for _, t := range tracers {
				if t.ReceivedStatelessReject != nil {
					t.ReceivedStatelessReject(attempt, hellosSent)
				}
			}
		},
		ReplayedRequests: func(count int) {
			for _, t := range tracers {
				if t.ReplayedRequests != nil {
					t.ReplayedRequests(count)
				}
			}
		},
		DroppedUnconfirmedRequests: func(count int) {
			for _, t := range tracers {
				if t.DroppedUnconfirmedRequests != nil {
					t.DroppedUnconfirmedRequests(count)
				}
			}
		},
		Connected: func(hellosSent int) {
			for _, t := range tracers {
				if t.Connected != nil {
					t.Connected(hellosSent)
				}
			}
		},
		ConnectFailed: func(err error, hellosSent int) {
			for _, t := range tracers {
				if t.ConnectFailed != nil {
					t.ConnectFailed(err, hellosSent)
				}
			}
		},
		MigratedSocket: func(local net.Addr) {
			for _, t := range tracers {
				if t.MigratedSocket != nil {
					t.MigratedSocket(local)
				}
			}
		},
		YieldedReadLoop: func() {
			for _, t := range tracers {
				if t.YieldedReadLoop != nil {
					t.YieldedReadLoop()
				}
			}
		},
		ReadError: func(err error) {
			for _, t := range tracers {
				if t.ReadError != nil {
					t.ReadError(err)
				}
			}
		},
		Closed: func() {
			for _, t := range tracers {
				if t.Closed != nil {
					t.Closed()
				}
			}
		},
	}
}
