// Package events carries recoverable conditions from rendering components to
// whoever is interested. Components never fail on these, they report and
// continue.
package events

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Severity of an event.
// ENUM(info, warning, error)
type Severity int

// Event keys.
const (
	IOError             = "IOError"
	UnresolvedTargets   = "UnresolvedTargets"
	MalformedPageDevice = "MalformedPageDevice"
	GlyphNotAvailable   = "GlyphNotAvailable"
	ImageNotFound       = "ImageNotFound"
	BitmapFallback      = "BitmapFallback"
	InvalidLanguage     = "InvalidLanguage"
	FontSubstituted     = "FontSubstituted"
	MalformedExtension  = "MalformedExtension"
)

type Event struct {
	Severity Severity
	Key      string
	Message  string
	Params   map[string]any
}

func (e Event) String() string {
	return fmt.Sprintf("%s [%s] %s", e.Severity, e.Key, e.Message)
}

// Broadcaster receives events.
type Broadcaster interface {
	Broadcast(e Event)
}

// New is a shortcut for building events.
func New(sev Severity, key, msg string, kv ...any) Event {
	e := Event{Severity: sev, Key: key, Message: msg}
	if len(kv) > 1 {
		e.Params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Params[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return e
}

// LogBroadcaster writes events to a zap logger.
type LogBroadcaster struct {
	log *zap.Logger
}

func NewLogBroadcaster(log *zap.Logger) *LogBroadcaster {
	return &LogBroadcaster{log: log.Named("events")}
}

func (b *LogBroadcaster) Broadcast(e Event) {
	fields := make([]zap.Field, 0, len(e.Params)+1)
	fields = append(fields, zap.String("key", e.Key))
	for _, k := range slices.Sorted(maps.Keys(e.Params)) {
		fields = append(fields, zap.Any(k, e.Params[k]))
	}
	switch e.Severity {
	case SeverityError:
		b.log.Error(e.Message, fields...)
	case SeverityWarning:
		b.log.Warn(e.Message, fields...)
	default:
		b.log.Info(e.Message, fields...)
	}
}

// Collector keeps events in memory.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) Broadcast(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

// ByKey returns collected events with the given key.
func (c *Collector) ByKey(key string) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Event
	for _, e := range c.events {
		if e.Key == key {
			out = append(out, e)
		}
	}
	return out
}

// Multi fans events out to several broadcasters.
type Multi []Broadcaster

func (m Multi) Broadcast(e Event) {
	for _, b := range m {
		if b != nil {
			b.Broadcast(e)
		}
	}
}

// Discard drops everything.
var Discard Broadcaster = Multi(nil)

// ErrOutput marks errors coming from the output stream.
var ErrOutput = errors.New("output stream failure")

// GuardWriter reports the first write error once as IOError. Errors are
// always returned to the caller, wrapped with ErrOutput.
type GuardWriter struct {
	w        io.Writer
	b        Broadcaster
	reported bool
}

func NewGuardWriter(w io.Writer, b Broadcaster) *GuardWriter {
	return &GuardWriter{w: w, b: b}
}

func (g *GuardWriter) Write(p []byte) (int, error) {
	n, err := g.w.Write(p)
	if err == nil {
		return n, nil
	}
	if !g.reported {
		g.reported = true
		g.b.Broadcast(New(SeverityError, IOError, "Unable to write output", "error", err.Error()))
	}
	return n, fmt.Errorf("%w: %w", ErrOutput, err)
}

// Failed reports whether a write error was seen.
func (g *GuardWriter) Failed() bool {
	return g.reported
}
