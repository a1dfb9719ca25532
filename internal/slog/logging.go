package slog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvVar is the environment variable the default logger reads its levels from.
const EnvVar = "QCLIENT_LOG_LEVEL"

// LevelNone is a log level that disables all logging.
const LevelNone slog.Level = slog.LevelError + 1

// ComponentKey is the slog attribute key used to identify the component.
const ComponentKey = "component"

// Levels is a parsed log level configuration.
type Levels struct {
	Default    slog.Level            // used for records without a configured component
	Components map[string]slog.Level // nil if no component-specific levels
}

func (l Levels) levelFor(component string) slog.Level {
	if lvl, ok := l.Components[component]; ok {
		return lvl
	}
	return l.Default
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return LevelNone, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
}

// ParseLevels parses a level configuration such as "info,reader=debug,udp=none".
// An entry without "=" sets the default level, which is LevelNone if omitted.
func ParseLevels(config string) (Levels, error) {
	levels := Levels{Default: LevelNone}
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		component, lvl, found := strings.Cut(part, "=")
		if !found {
			level, err := parseLevel(part)
			if err != nil {
				return Levels{}, err
			}
			levels.Default = level
			continue
		}
		component = strings.TrimSpace(component)
		level, err := parseLevel(lvl)
		if err != nil {
			return Levels{}, fmt.Errorf("component %s: %w", component, err)
		}
		if levels.Components == nil {
			levels.Components = make(map[string]slog.Level)
		}
		levels.Components[component] = level
	}
	return levels, nil
}

// componentHandler filters records by the level configured for the
// component the logger was derived for, and prints the message last.
type componentHandler struct {
	next      slog.Handler
	levels    Levels
	component string
}

var _ slog.Handler = &componentHandler{}

func (h *componentHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.levels.levelFor(h.component)
}

func (h *componentHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String(slog.MessageKey, r.Message))
	r.Message = ""
	return h.next.Handle(ctx, r)
}

func (h *componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, attr := range attrs {
		if attr.Key == ComponentKey {
			component = attr.Value.String()
		}
	}
	return &componentHandler{next: h.next.WithAttrs(attrs), levels: h.levels, component: component}
}

func (h *componentHandler) WithGroup(name string) slog.Handler {
	return &componentHandler{next: h.next.WithGroup(name), levels: h.levels, component: h.component}
}

// NewHandler returns a text handler writing to w, filtered by levels.
func NewHandler(w io.Writer, levels Levels) slog.Handler {
	return &componentHandler{
		next: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug, // filtering is done by the componentHandler
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				// drop the empty message emitted in front of the attributes
				if len(groups) == 0 && a.Key == slog.MessageKey && a.Value.String() == "" {
					return slog.Attr{}
				}
				return a
			},
		}),
		levels: levels,
	}
}

// NewLogger creates a logger writing to w, configured from QCLIENT_LOG_LEVEL.
// An unparsable configuration disables logging and is reported on stderr.
func NewLogger(w io.Writer) *slog.Logger {
	levels, err := ParseLevels(os.Getenv(EnvVar))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse %s: %v\n", EnvVar, err)
		levels = Levels{Default: LevelNone}
	}
	return slog.New(NewHandler(w, levels))
}

// DefaultLogger logs to stderr.
var DefaultLogger = NewLogger(os.Stderr)

// Component derives a logger for the named component.
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = DefaultLogger
	}
	return l.With(ComponentKey, name)
}
