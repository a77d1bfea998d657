package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := GetLoggerWithWriter(&buf, Debug)

	logger.V(Debug).Info("resized", "items", 9)
	logger.V(Trace).Info("shuffled")

	out := buf.String()
	if !strings.Contains(out, `"resized"`) || !strings.Contains(out, `"items"=9`) {
		t.Errorf("expected the debug line got %q", out)
	}
	if strings.Contains(out, "shuffled") {
		t.Errorf("trace line should be filtered at debug verbosity: %q", out)
	}
	if !strings.Contains(out, "derange") {
		t.Errorf("expected the logger name in %q", out)
	}
}

func TestInvalidVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := GetLoggerWithWriter(&buf, 7)

	if !strings.Contains(buf.String(), "Invalid verbosity") {
		t.Errorf("expected a warning got %q", buf.String())
	}
	if logger.V(Debug).Enabled() {
		t.Errorf("expected debug to be disabled")
	}
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), GetLoggerWithWriter(&buf, Info))

	GetLoggerFromContextWithName(ctx, "session").Info("hello")
	if !strings.Contains(buf.String(), "derange/session") {
		t.Errorf("expected a named logger got %q", buf.String())
	}

	// no logger in the context still yields a usable one
	GetLoggerFromContextWithName(context.Background(), "").V(Trace).Info("dropped")
}
