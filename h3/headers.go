package h3

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/quic-go/qpack"
	"golang.org/x/net/http/httpguts"
)

const defaultUserAgent = "qclient"

// maxHeaderBytes limits the size of a header block, counted the way the
// QPACK dynamic table counts it.
const maxHeaderBytes = http.DefaultMaxHeaderBytes

// RequestHeaders returns the HTTP/3 header fields for req.
func RequestHeaders(req *http.Request, contentLength int64) ([]qpack.HeaderField, error) {
	if req.URL == nil {
		return nil, errors.New("h3: request without URL")
	}
	host := req.Host
	if host == "" {
		host = req.URL.Host
	}
	host, err := httpguts.PunycodeHostPort(host)
	if err != nil {
		return nil, err
	}
	if host == "" {
		return nil, errors.New("h3: request without host")
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	if method == http.MethodConnect {
		return nil, errors.New("h3: CONNECT requests are not supported")
	}
	path := req.URL.RequestURI()
	if !strings.HasPrefix(path, "/") && path != "*" {
		return nil, fmt.Errorf("h3: invalid request :path %q", path)
	}
	scheme := req.URL.Scheme
	if scheme == "" {
		scheme = "https"
	}

	var fields []qpack.HeaderField
	f := func(name, value string) {
		fields = append(fields, qpack.HeaderField{Name: strings.ToLower(name), Value: value})
	}
	f(":authority", host)
	f(":method", method)
	f(":path", path)
	f(":scheme", scheme)

	var didUA bool
	for k, vv := range req.Header {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, fmt.Errorf("h3: invalid header name %q", k)
		}
		switch strings.ToLower(k) {
		case "host", "content-length":
			// sent as :authority and below
			continue
		case "connection", "proxy-connection", "transfer-encoding", "upgrade", "keep-alive":
			// connection-specific header fields are not allowed
			continue
		case "user-agent":
			didUA = true
			if len(vv) == 0 || vv[0] == "" {
				continue
			}
			vv = vv[:1]
		}
		for _, v := range vv {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, fmt.Errorf("h3: invalid value %q for header %q", v, k)
			}
			f(k, v)
		}
	}
	if contentLength > 0 || (contentLength == 0 && methodHasBody(method)) {
		f("content-length", strconv.FormatInt(contentLength, 10))
	}
	if !didUA {
		f("user-agent", defaultUserAgent)
	}
	return fields, nil
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func encodeHeaders(fields []qpack.HeaderField) ([]byte, error) {
	var l int
	for _, hf := range fields {
		l += len(hf.Name) + len(hf.Value) + 32
	}
	if l > maxHeaderBytes {
		return nil, fmt.Errorf("h3: HEADERS frame too large: %d bytes (max: %d)", l, maxHeaderBytes)
	}
	var buf bytes.Buffer
	enc := qpack.NewEncoder(&buf)
	for _, hf := range fields {
		if err := enc.WriteField(hf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeHeaders(b []byte) ([]qpack.HeaderField, error) {
	fields, err := qpack.NewDecoder(nil).DecodeFull(b)
	if err != nil {
		return nil, fmt.Errorf("h3: decoding header block: %w", err)
	}
	return fields, nil
}
