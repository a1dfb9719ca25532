package h3

import (
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/quic-go/qpack"
	"github.com/stretchr/testify/require"
)

func mustParseURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func headersFrame(t *testing.T, fields ...qpack.HeaderField) []byte {
	t.Helper()
	b, err := encodeHeaders(fields)
	require.NoError(t, err)
	return appendFrame(nil, FrameTypeHeaders, b)
}

func TestDecodeResponse(t *testing.T) {
	data, err := EncodeResponse(http.StatusOK, http.Header{"Content-Type": {"text/plain"}}, []byte("foobar"))
	require.NoError(t, err)

	req := &http.Request{Method: http.MethodGet}
	rsp, err := DecodeResponse(data, req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rsp.StatusCode)
	require.Equal(t, "200 OK", rsp.Status)
	require.Equal(t, "HTTP/3.0", rsp.Proto)
	require.Equal(t, "text/plain", rsp.Header.Get("Content-Type"))
	require.Equal(t, int64(6), rsp.ContentLength)
	require.Same(t, req, rsp.Request)
	body, err := io.ReadAll(rsp.Body)
	require.NoError(t, err)
	require.Equal(t, "foobar", string(body))
}

func TestDecodeResponseSkipsInformational(t *testing.T) {
	data := headersFrame(t, qpack.HeaderField{Name: ":status", Value: "103"}, qpack.HeaderField{Name: "link", Value: "</style.css>"})
	data = append(data, headersFrame(t, qpack.HeaderField{Name: ":status", Value: "404"})...)
	data = appendFrame(data, FrameTypeData, []byte("not "))
	data = appendFrame(data, FrameTypeData, []byte("found"))
	data = append(data, headersFrame(t, qpack.HeaderField{Name: "checksum", Value: "abc"})...)

	rsp, err := DecodeResponse(data, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rsp.StatusCode)
	require.Empty(t, rsp.Header.Get("Link"))
	require.Equal(t, int64(9), rsp.ContentLength)
	require.Equal(t, "abc", rsp.Trailer.Get("Checksum"))
	body, err := io.ReadAll(rsp.Body)
	require.NoError(t, err)
	require.Equal(t, "not found", string(body))
}

func TestDecodeResponseErrors(t *testing.T) {
	status := qpack.HeaderField{Name: ":status", Value: "200"}

	tests := []struct {
		name string
		data []byte
		err  string
	}{
		{name: "empty", data: nil, err: errNoHeaders.Error()},
		{name: "DATA before HEADERS", data: appendFrame(nil, FrameTypeData, []byte("foo")), err: "h3: DATA frame before HEADERS frame"},
		{name: "no status", data: headersFrame(t, qpack.HeaderField{Name: "foo", Value: "bar"}), err: "h3: response without :status"},
		{name: "invalid status", data: headersFrame(t, qpack.HeaderField{Name: ":status", Value: "foo"}), err: `h3: invalid status code "foo"`},
		{name: "request pseudo header", data: headersFrame(t, status, qpack.HeaderField{Name: ":path", Value: "/"}), err: `h3: invalid response pseudo header ":path"`},
		{name: "invalid content length", data: headersFrame(t, status, qpack.HeaderField{Name: "content-length", Value: "-1"}), err: `h3: invalid content length "-1"`},
		{
			name: "content length mismatch",
			data: appendFrame(headersFrame(t, status, qpack.HeaderField{Name: "content-length", Value: "10"}), FrameTypeData, []byte("foo")),
			err:  "h3: content length 10 doesn't match body of 3 bytes",
		},
		{
			name: "DATA after trailers",
			data: appendFrame(append(headersFrame(t, status), headersFrame(t, qpack.HeaderField{Name: "foo", Value: "bar"})...), FrameTypeData, []byte("foo")),
			err:  "h3: DATA frame after trailers",
		},
		{name: "invalid header block", data: appendFrame(nil, FrameTypeHeaders, []byte{0xff, 0xff, 0xff}), err: "h3: decoding header block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeResponse(tt.data, nil)
			require.ErrorContains(t, err, tt.err)
		})
	}
}
