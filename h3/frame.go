package h3

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/quic-go/quic-go/quicvarint"
)

// A FrameType is an HTTP/3 frame type.
type FrameType uint64

const (
	FrameTypeData     FrameType = 0x0
	FrameTypeHeaders  FrameType = 0x1
	FrameTypeSettings FrameType = 0x4
	FrameTypeGoAway   FrameType = 0x7
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeData:
		return "DATA"
	case FrameTypeHeaders:
		return "HEADERS"
	case FrameTypeSettings:
		return "SETTINGS"
	case FrameTypeGoAway:
		return "GOAWAY"
	default:
		return fmt.Sprintf("H3 frame type 0x%x", uint64(t))
	}
}

// errFrameTooShort is returned for frames that are cut off.
var errFrameTooShort = errors.New("h3: frame too short")

type frame struct {
	Type    FrameType
	Payload []byte
}

func appendFrame(b []byte, t FrameType, payload []byte) []byte {
	b = quicvarint.Append(b, uint64(t))
	b = quicvarint.Append(b, uint64(len(payload)))
	return append(b, payload...)
}

// parseFrames splits data into frames.
// Frames of types that can't appear on a request stream are skipped.
func parseFrames(data []byte) ([]frame, error) {
	r := bytes.NewReader(data)
	var frames []frame
	for r.Len() > 0 {
		t, err := quicvarint.Read(r)
		if err != nil {
			return nil, errFrameTooShort
		}
		l, err := quicvarint.Read(r)
		if err != nil {
			return nil, errFrameTooShort
		}
		if l > uint64(r.Len()) {
			return nil, errFrameTooShort
		}
		payload := make([]byte, l)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		switch FrameType(t) {
		case FrameTypeData, FrameTypeHeaders:
			frames = append(frames, frame{Type: FrameType(t), Payload: payload})
		case FrameTypeSettings, FrameTypeGoAway:
			return nil, fmt.Errorf("h3: unexpected %s frame on request stream", FrameType(t))
		default:
			// skip over unknown frames, including reserved ones
		}
	}
	return frames, nil
}
