package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("exported") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("state", "to", "rasterizing") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("state", "to", "rasterizing") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("metadata unavailable") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Exported polaroid.png")

	out := buf.String()
	if !strings.Contains(out, "Exported polaroid.png (") {
		t.Errorf("progress output = %q, want message with duration", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	got.Info("selected", "file", "DSC_0042.jpg")
	if !strings.Contains(buf.String(), "DSC_0042.jpg") {
		t.Errorf("attached logger output = %q", buf.String())
	}
}
