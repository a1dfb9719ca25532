package qclient

import "time"

// A pendingRequest is a request sent before the handshake was confirmed.
type pendingRequest struct {
	body       []byte
	fin        bool
	enqueuedAt time.Time
}

type replayState uint8

const (
	// noPendingReplay: the queue holds requests sent on the current session
	// before handshake confirmation.
	noPendingReplay replayState = iota
	// awaitingReplay: the session those requests were sent on was statelessly
	// rejected, and they must be resent on the next session.
	awaitingReplay
)

func (s replayState) String() string {
	switch s {
	case noPendingReplay:
		return "no pending replay"
	case awaitingReplay:
		return "awaiting replay"
	default:
		return "unknown replay state"
	}
}

// The resendQueue tracks optimistically sent requests in submission order.
// A single sequence is used for both the requests sent before handshake
// confirmation and the requests awaiting replay, the state says which one it is.
type resendQueue struct {
	state    replayState
	requests []pendingRequest
}

// Append records a request sent before handshake confirmation.
func (q *resendQueue) Append(r pendingRequest) {
	if q.state == awaitingReplay {
		panic("resendQueue: appending while a replay is awaited")
	}
	q.requests = append(q.requests, r)
}

// MarkForReplay turns the requests sent before handshake confirmation into
// requests awaiting replay. If a replay is already awaited, no requests can
// have been appended since, and the queue is left untouched.
func (q *resendQueue) MarkForReplay() {
	if len(q.requests) == 0 && q.state == noPendingReplay {
		return
	}
	q.state = awaitingReplay
}

// DiscardUnconfirmed drops the requests sent before handshake confirmation.
// Requests awaiting replay are kept.
func (q *resendQueue) DiscardUnconfirmed() {
	if q.state == awaitingReplay {
		return
	}
	q.requests = nil
}

// DrainReplay returns the requests awaiting replay in submission order and
// empties the queue.
func (q *resendQueue) DrainReplay() []pendingRequest {
	if q.state != awaitingReplay {
		return nil
	}
	requests := q.requests
	q.requests = nil
	q.state = noPendingReplay
	return requests
}

// Clear drops all requests.
func (q *resendQueue) Clear() {
	q.requests = nil
	q.state = noPendingReplay
}

func (q *resendQueue) AwaitingReplay() bool { return q.state == awaitingReplay }

// NumUnconfirmed returns the number of requests sent before handshake
// confirmation on the current session.
func (q *resendQueue) NumUnconfirmed() int {
	if q.state == awaitingReplay {
		return 0
	}
	return len(q.requests)
}

// NumAwaitingReplay returns the number of requests awaiting replay.
func (q *resendQueue) NumAwaitingReplay() int {
	if q.state != awaitingReplay {
		return 0
	}
	return len(q.requests)
}
