package events

import (
	"bytes"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingWriter struct {
	err   error
	calls int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, w.err
}

func TestGuardWriter_ReportsOnce(t *testing.T) {
	c := &Collector{}
	fw := &failingWriter{err: errors.New("disk full")}
	g := NewGuardWriter(fw, c)

	for range 3 {
		_, err := g.Write([]byte("x"))
		if !errors.Is(err, ErrOutput) {
			t.Fatalf("Write() error = %v, want ErrOutput", err)
		}
		if !errors.Is(err, fw.err) {
			t.Fatalf("Write() error = %v, want wrapped cause", err)
		}
	}
	if got := len(c.ByKey(IOError)); got != 1 {
		t.Errorf("IOError events = %d, want 1", got)
	}
	if fw.calls != 3 || !g.Failed() {
		t.Errorf("calls = %d, failed = %v", fw.calls, g.Failed())
	}
}

func TestGuardWriter_PassThrough(t *testing.T) {
	c := &Collector{}
	var buf bytes.Buffer
	g := NewGuardWriter(&buf, c)
	if _, err := g.Write([]byte("hello")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != "hello" || len(c.Events()) != 0 {
		t.Errorf("buf = %q, events = %v", buf.String(), c.Events())
	}
}

func TestLogBroadcaster(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	b := NewLogBroadcaster(zap.New(core))

	b.Broadcast(New(SeverityWarning, UnresolvedTargets, "Unresolved targets", "count", 2, "ids", "a"))
	b.Broadcast(New(SeverityInfo, BitmapFallback, "fallback"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].LoggerName != "events" {
		t.Errorf("entry = %+v", entries[0])
	}
	fields := entries[0].ContextMap()
	if fields["key"] != UnresolvedTargets || fields["count"] != int64(2) || fields["ids"] != "a" {
		t.Errorf("fields = %v", fields)
	}
}

func TestMulti(t *testing.T) {
	a, b := &Collector{}, &Collector{}
	Multi{a, nil, b}.Broadcast(New(SeverityError, IOError, "x"))
	if len(a.Events()) != 1 || len(b.Events()) != 1 {
		t.Error("event not delivered to all receivers")
	}
	Discard.Broadcast(New(SeverityInfo, IOError, "dropped"))
}
