// Package testutil holds fixtures and logging helpers shared by the
// converter tests.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a debug logger that routes each record to t.Log
// without timestamps, so conversion logs show up next to the failing test.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()

	return newLogger(&tbWriter{t: t})
}

// LogBuffer collects the records written by a recording logger. Batch
// workers log concurrently, so access is serialized.
type LogBuffer struct {
	mu  sync.Mutex
	t   testing.TB
	buf bytes.Buffer
}

// NewRecordingLogger returns a logger that writes to t.Log and also keeps
// every record in the returned buffer for assertions.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *LogBuffer) {
	t.Helper()

	b := &LogBuffer{t: t}

	return newLogger(b), b
}

func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.t.Log(strings.TrimRight(string(p), "\n"))

	return b.buf.Write(p)
}

// Lines returns the recorded records, one logfmt line each.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	text := strings.TrimRight(b.buf.String(), "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

// Find returns the first record whose message is msg.
func (b *LogBuffer) Find(msg string) (string, bool) {
	for _, line := range b.Lines() {
		if strings.Contains(line, "msg="+quoteMsg(msg)) {
			return line, true
		}
	}

	return "", false
}

func quoteMsg(msg string) string {
	if strings.ContainsAny(msg, " =\"") {
		return `"` + msg + `"`
	}

	return msg
}

type tbWriter struct {
	t testing.TB
}

func (w *tbWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))

	return len(p), nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}))
}
