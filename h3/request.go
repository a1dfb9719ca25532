// Package h3 encodes HTTP/3 requests and decodes HTTP/3 responses.
//
// A request is sent as the complete contents of a bidirectional request
// stream: a HEADERS frame followed by a DATA frame carrying the body.
// The response is decoded once the server finished its side of the stream.
// Header blocks only use QPACK's static table.
package h3

import (
	"io"
	"net/http"
)

// EncodeRequest encodes req, including its body, as the contents of a request stream.
// Trailers are not supported.
func EncodeRequest(req *http.Request) ([]byte, error) {
	var body []byte
	if req.Body != nil && req.Body != http.NoBody {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
	}
	contentLength := int64(len(body))
	if body == nil {
		contentLength = -1
	}
	fields, err := RequestHeaders(req, contentLength)
	if err != nil {
		return nil, err
	}
	headers, err := encodeHeaders(fields)
	if err != nil {
		return nil, err
	}
	b := appendFrame(nil, FrameTypeHeaders, headers)
	if len(body) > 0 {
		b = appendFrame(b, FrameTypeData, body)
	}
	return b, nil
}
