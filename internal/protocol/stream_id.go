package protocol

// A StreamID identifies a stream within a session
type StreamID int64

// InvalidStreamID is returned when no stream could be opened.
const InvalidStreamID StreamID = -1

// Priority is the scheduling priority requested for an outgoing stream.
// Lower values are served first.
type Priority uint8

// DefaultStreamPriority is used for request streams unless configured otherwise.
const DefaultStreamPriority Priority = 3
