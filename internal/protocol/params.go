package protocol

import "time"

// DefaultMaxClientHellos is the number of client hellos a logical connection
// may send before a run of stateless rejects is considered terminal.
const DefaultMaxClientHellos = 3

// DefaultConnectionIDLength is the length of connection IDs the client generates.
const DefaultConnectionIDLength = 8

// DefaultYieldAfterPackets is the number of synchronously available packets
// the reader processes inline before yielding to other scheduled work.
const DefaultYieldAfterPackets = 32

// DefaultYieldAfterDuration bounds how long the reader may keep processing
// synchronously available packets in one scheduling turn.
const DefaultYieldAfterDuration = 2 * time.Millisecond

// DesiredReceiveBufferSize is the socket receive buffer size requested on initialization.
const DesiredReceiveBufferSize = 1 << 20

// DesiredSendBufferSize is the socket send buffer size requested on initialization.
const DesiredSendBufferSize = 1 << 20

// MaxPacketBufferSize is the size of the buffer used to read a single datagram.
const MaxPacketBufferSize = 1452

// MaxCachedStates is the number of servers the default cached state store remembers.
const MaxCachedStates = 100

// MaxServerDesignatedConnectionIDs is the number of server-designated
// connection IDs retained per server.
const MaxServerDesignatedConnectionIDs = 4
