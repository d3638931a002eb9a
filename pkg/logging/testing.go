package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger records everything logged through Logger.
type TestLogger struct {
	Logger *zerolog.Logger
	buf    bytes.Buffer
}

// NewTestLogger returns a trace-level recorder. The global level is lowered
// for the duration of the test and restored afterwards.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()
	previous := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	tl := &TestLogger{}
	logger := zerolog.New(&tl.buf).Level(zerolog.TraceLevel)
	tl.Logger = &logger
	return tl
}

// Lines returns the recorded JSON lines.
func (tl *TestLogger) Lines() []string {
	out := strings.TrimSpace(tl.buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// AssertContains fails t unless some recorded output contains substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !strings.Contains(tl.buf.String(), substr) {
		t.Errorf("log output lacks %q:\n%s", substr, tl.buf.String())
	}
}

// AssertNotContains fails t if any recorded output contains substr.
func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if strings.Contains(tl.buf.String(), substr) {
		t.Errorf("log output unexpectedly has %q:\n%s", substr, tl.buf.String())
	}
}

// NewNopLogger returns a logger that drops everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
