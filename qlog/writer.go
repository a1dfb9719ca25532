package qlog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/francoispqt/gojay"
)

const eventChanSize = 50

const recordSeparator = 0x1e

// The writer encodes events on a separate goroutine.
type writer struct {
	w io.WriteCloser

	referenceTime time.Time
	title         string

	events     chan event
	encodeErr  error
	runStopped chan struct{}
}

func newWriter(w io.WriteCloser, title string, referenceTime time.Time) *writer {
	return &writer{
		w:             w,
		title:         title,
		referenceTime: referenceTime,
		runStopped:    make(chan struct{}),
		events:        make(chan event, eventChanSize),
	}
}

func (w *writer) RecordEvent(eventTime time.Time, details eventDetails) {
	w.events <- event{
		RelativeTime: eventTime.Sub(w.referenceTime),
		eventDetails: details,
	}
}

func (w *writer) Run() {
	defer close(w.runStopped)
	buf := &bytes.Buffer{}
	buf.WriteByte(recordSeparator)
	enc := gojay.NewEncoder(buf)
	if err := enc.EncodeObject(&topLevel{title: w.title, referenceTime: w.referenceTime}); err != nil {
		panic(fmt.Sprintf("qlog encoding into a bytes.Buffer failed: %s", err))
	}
	buf.WriteByte('\n')
	if _, err := w.w.Write(buf.Bytes()); err != nil {
		w.encodeErr = err
	}
	enc = gojay.NewEncoder(w.w)
	for ev := range w.events {
		if w.encodeErr != nil { // if encoding failed, just continue draining the event channel
			continue
		}
		if _, err := w.w.Write([]byte{recordSeparator}); err != nil {
			w.encodeErr = err
			continue
		}
		if err := enc.EncodeObject(ev); err != nil {
			w.encodeErr = err
			continue
		}
		if _, err := w.w.Write([]byte{'\n'}); err != nil {
			w.encodeErr = err
		}
	}
}

func (w *writer) Close() error {
	close(w.events)
	<-w.runStopped
	if w.encodeErr != nil {
		w.w.Close()
		return w.encodeErr
	}
	return w.w.Close()
}

type bufferedWriteCloser struct {
	*bufio.Writer
	io.Closer
}

// newBufferedWriteCloser creates an io.WriteCloser from a bufio.Writer and an io.Closer
func newBufferedWriteCloser(writer *bufio.Writer, closer io.Closer) io.WriteCloser {
	return &bufferedWriteCloser{
		Writer: writer,
		Closer: closer,
	}
}

func (h bufferedWriteCloser) Close() error {
	if err := h.Writer.Flush(); err != nil {
		return err
	}
	return h.Closer.Close()
}
