package h3

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/quic-go/qpack"
)

var errNoHeaders = errors.New("h3: response without HEADERS frame")

// DecodeResponse decodes the contents of a request stream the server finished.
// Informational (1xx) responses are skipped. A HEADERS frame after the body
// is decoded as trailers.
func DecodeResponse(data []byte, req *http.Request) (*http.Response, error) {
	frames, err := parseFrames(data)
	if err != nil {
		return nil, err
	}
	var (
		rsp  *http.Response
		body bytes.Buffer
	)
	for _, f := range frames {
		switch f.Type {
		case FrameTypeHeaders:
			fields, err := decodeHeaders(f.Payload)
			if err != nil {
				return nil, err
			}
			if rsp != nil {
				rsp.Trailer = trailerFromFields(fields)
				continue
			}
			r, err := responseFromFields(fields)
			if err != nil {
				return nil, err
			}
			if r.StatusCode >= 100 && r.StatusCode < 200 {
				continue
			}
			rsp = r
		case FrameTypeData:
			if rsp == nil {
				return nil, errors.New("h3: DATA frame before HEADERS frame")
			}
			if rsp.Trailer != nil {
				return nil, errors.New("h3: DATA frame after trailers")
			}
			body.Write(f.Payload)
		}
	}
	if rsp == nil {
		return nil, errNoHeaders
	}
	if rsp.ContentLength >= 0 && rsp.ContentLength != int64(body.Len()) {
		return nil, fmt.Errorf("h3: content length %d doesn't match body of %d bytes", rsp.ContentLength, body.Len())
	}
	rsp.ContentLength = int64(body.Len())
	rsp.Body = io.NopCloser(&body)
	rsp.Request = req
	return rsp, nil
}

func responseFromFields(fields []qpack.HeaderField) (*http.Response, error) {
	rsp := &http.Response{
		Proto:         "HTTP/3.0",
		ProtoMajor:    3,
		Header:        http.Header{},
		ContentLength: -1,
	}
	var haveStatus bool
	for _, hf := range fields {
		if hf.IsPseudo() {
			if hf.Name != ":status" {
				return nil, fmt.Errorf("h3: invalid response pseudo header %q", hf.Name)
			}
			status, err := strconv.Atoi(hf.Value)
			if err != nil || status < 100 || status > 999 {
				return nil, fmt.Errorf("h3: invalid status code %q", hf.Value)
			}
			rsp.StatusCode = status
			rsp.Status = hf.Value + " " + http.StatusText(status)
			haveStatus = true
			continue
		}
		if strings.EqualFold(hf.Name, "content-length") {
			n, err := strconv.ParseInt(hf.Value, 10, 64)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("h3: invalid content length %q", hf.Value)
			}
			rsp.ContentLength = n
		}
		rsp.Header.Add(hf.Name, hf.Value)
	}
	if !haveStatus {
		return nil, errors.New("h3: response without :status")
	}
	return rsp, nil
}

func trailerFromFields(fields []qpack.HeaderField) http.Header {
	trailer := http.Header{}
	for _, hf := range fields {
		if !hf.IsPseudo() {
			trailer.Add(hf.Name, hf.Value)
		}
	}
	return trailer
}

// EncodeResponse encodes a response with the given status, headers and body.
// It is the counterpart of DecodeResponse, used by servers and tests.
func EncodeResponse(status int, header http.Header, body []byte) ([]byte, error) {
	fields := []qpack.HeaderField{{Name: ":status", Value: strconv.Itoa(status)}}
	for k, vv := range header {
		if strings.EqualFold(k, "content-length") {
			continue
		}
		for _, v := range vv {
			fields = append(fields, qpack.HeaderField{Name: strings.ToLower(k), Value: v})
		}
	}
	fields = append(fields, qpack.HeaderField{Name: "content-length", Value: strconv.Itoa(len(body))})
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
