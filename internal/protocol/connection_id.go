package protocol

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
)

// A ConnectionID identifies a connection attempt towards a server.
type ConnectionID []byte

// MaxConnectionIDLen is the longest connection ID the client will generate.
const MaxConnectionIDLen = 20

// GenerateConnectionID generates a connection ID of the given length, reading
// its entropy from r. A nil r uses crypto/rand.
func GenerateConnectionID(r io.Reader, l int) (ConnectionID, error) {
	if l <= 0 || l > MaxConnectionIDLen {
		return nil, fmt.Errorf("invalid connection ID length: %d", l)
	}
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, l)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return ConnectionID(b), nil
}

// ParseConnectionID copies b into a new ConnectionID.
func ParseConnectionID(b []byte) ConnectionID {
	if len(b) == 0 {
		return nil
	}
	return ConnectionID(bytes.Clone(b))
}

// Equal says if two connection IDs are equal
func (c ConnectionID) Equal(other ConnectionID) bool {
	return bytes.Equal(c, other)
}

// Len returns the length of the connection ID in bytes
func (c ConnectionID) Len() int {
	return len(c)
}

// Bytes returns the byte representation
func (c ConnectionID) Bytes() []byte {
	return []byte(c)
}

func (c ConnectionID) String() string {
	if c.Len() == 0 {
		return "(empty)"
	}
	return fmt.Sprintf("%x", c.Bytes())
}
