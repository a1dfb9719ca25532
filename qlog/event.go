package qlog

import (
	"time"

	"github.com/quic-go/qclient/logging"

	"github.com/francoispqt/gojay"
)

func milliseconds(dur time.Duration) float64 { return float64(dur.Nanoseconds()) / 1e6 }

type topLevel struct {
	title         string
	referenceTime time.Time
}

func (topLevel) IsNil() bool { return false }
func (l topLevel) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("qlog_format", "JSON-SEQ")
	enc.StringKey("qlog_version", "0.3")
	enc.StringKeyOmitEmpty("title", l.title)
	enc.ObjectKey("trace", &trace{referenceTime: l.referenceTime})
}

type trace struct {
	referenceTime time.Time
}

func (*trace) IsNil() bool { return false }
func (t *trace) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("vantage_point", vantagePoint{})
	enc.ObjectKey("common_fields", commonFields{referenceTime: t.referenceTime})
}

type vantagePoint struct{}

func (vantagePoint) IsNil() bool { return false }
func (vantagePoint) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("type", "client")
}

type commonFields struct {
	referenceTime time.Time
}

func (commonFields) IsNil() bool { return false }
func (f commonFields) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("time_format", "relative")
	enc.FloatKey("reference_time", float64(f.referenceTime.UnixNano())/1e6)
}

type eventDetails interface {
	Name() string
	gojay.MarshalerJSONObject
}

type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONObject = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONObject(enc *gojay.Encoder) {
	enc.FloatKey("time", milliseconds(e.RelativeTime))
	enc.StringKey("name", "client:"+e.Name())
	enc.ObjectKey("data", e.eventDetails)
}

type versions []logging.Version

func (v versions) IsNil() bool { return false }
func (v versions) MarshalJSONArray(enc *gojay.Encoder) {
	for _, e := range v {
		enc.String(e.String())
	}
}

type eventConnectAttemptStarted struct {
	Attempt      int
	ConnectionID logging.ConnectionID
	Versions     []logging.Version
}

func (e eventConnectAttemptStarted) Name() string { return "connect_attempt_started" }
func (e eventConnectAttemptStarted) IsNil() bool  { return false }

func (e eventConnectAttemptStarted) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("attempt", e.Attempt)
	enc.StringKey("connection_id", e.ConnectionID.String())
	if len(e.Versions) > 0 {
		enc.ArrayKey("versions", versions(e.Versions))
	}
}

type eventStatelessRejectReceived struct {
	Attempt    int
	HellosSent int
}

func (e eventStatelessRejectReceived) Name() string { return "stateless_reject_received" }
func (e eventStatelessRejectReceived) IsNil() bool  { return false }

func (e eventStatelessRejectReceived) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("attempt", e.Attempt)
	enc.IntKey("client_hellos_sent", e.HellosSent)
}

type eventRequestsReplayed struct {
	Count int
}

func (e eventRequestsReplayed) Name() string { return "requests_replayed" }
func (e eventRequestsReplayed) IsNil() bool  { return false }

func (e eventRequestsReplayed) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("count", e.Count)
}

type eventUnconfirmedRequestsDropped struct {
	Count int
}

func (e eventUnconfirmedRequestsDropped) Name() string { return "unconfirmed_requests_dropped" }
func (e eventUnconfirmedRequestsDropped) IsNil() bool  { return false }

func (e eventUnconfirmedRequestsDropped) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("count", e.Count)
}

type eventConnected struct {
	HellosSent int
}

func (e eventConnected) Name() string { return "connected" }
func (e eventConnected) IsNil() bool  { return false }

func (e eventConnected) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("client_hellos_sent", e.HellosSent)
}

type eventConnectFailed struct {
	Err        error
	HellosSent int
}

func (e eventConnectFailed) Name() string { return "connect_failed" }
func (e eventConnectFailed) IsNil() bool  { return false }

func (e eventConnectFailed) MarshalJSONObject(enc *gojay.Encoder) {
	if e.Err != nil {
		enc.StringKey("error", e.Err.Error())
	}
	enc.IntKey("client_hellos_sent", e.HellosSent)
}

type eventSocketMigrated struct {
	Local string
}

func (e eventSocketMigrated) Name() string { return "socket_migrated" }
func (e eventSocketMigrated) IsNil() bool  { return false }

func (e eventSocketMigrated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("local", e.Local)
}

type eventReadLoopYielded struct{}

func (e eventReadLoopYielded) Name() string                         { return "read_loop_yielded" }
func (e eventReadLoopYielded) IsNil() bool                          { return false }
func (e eventReadLoopYielded) MarshalJSONObject(enc *gojay.Encoder) {}

type eventReadError struct {
	Err error
}

func (e eventReadError) Name() string { return "read_error" }
func (e eventReadError) IsNil() bool  { return false }

func (e eventReadError) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("error", e.Err.Error())
}

type eventClientClosed struct{}

func (e eventClientClosed) Name() string                         { return "client_closed" }
func (e eventClientClosed) IsNil() bool                          { return false }
func (e eventClientClosed) MarshalJSONObject(enc *gojay.Encoder) {}
