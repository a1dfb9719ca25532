package udp

import (
	"sync"

	"github.com/quic-go/qclient/internal/protocol"
)

type datagramBuffer struct {
	Data []byte
}

// Release puts the buffer back into the pool.
// The buffer must not be used afterwards.
func (b *datagramBuffer) Release() {
	if cap(b.Data) != protocol.MaxPacketBufferSize {
		panic("datagramBuffer released with wrong capacity")
	}
	bufferPool.Put(b)
}

var bufferPool = sync.Pool{New: func() any {
	return &datagramBuffer{Data: make([]byte, 0, protocol.MaxPacketBufferSize)}
}}

func getDatagramBuffer() *datagramBuffer {
	buf := bufferPool.Get().(*datagramBuffer)
	buf.Data = buf.Data[:protocol.MaxPacketBufferSize]
	return buf
}
