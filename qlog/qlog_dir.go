package qlog

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// QlogDir contains the value of the QLOGDIR environment variable.
// If it is the empty string ("") no qlog output is written.
var QlogDir string

func init() {
	QlogDir = os.Getenv("QLOGDIR")
}

// DefaultClientTracer creates a qlog file in the qlog directory specified by the QLOGDIR environment variable.
// File names are <timestamp>_<label>.qlog.
// Returns nil if QLOGDIR is not set.
func DefaultClientTracer(label string) *Tracer {
	if QlogDir == "" {
		return nil
	}
	t, err := dirTracer(QlogDir, label, time.Now())
	if err != nil {
		log.Print(err)
		return nil
	}
	return t
}

// NewDirTracer creates a tracer writing to a new qlog file in dir.
// The directory is created if it doesn't exist.
func NewDirTracer(dir, label string) (*Tracer, error) {
	return dirTracer(dir, label, time.Now())
}

func dirTracer(dir, label string, now time.Time) (*Tracer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create qlog dir %s: %w", dir, err)
	}
	path := fmt.Sprintf("%s/%s_%s.qlog", strings.TrimRight(dir, "/"), now.Format("20060102T150405.000"), label)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create qlog file %s: %w", path, err)
	}
	return NewClientTracer(newBufferedWriteCloser(bufio.NewWriter(f), f), label), nil
}
