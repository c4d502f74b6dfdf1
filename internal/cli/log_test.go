package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("assigned levels", "nodes", 12)

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("resolving overlaps") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("resolving overlaps") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("resolving overlaps") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	time.Sleep(10 * time.Millisecond)

	prog.done("Positioned 42 nodes")

	output := buf.String()
	if !strings.Contains(output, "Positioned 42 nodes") {
		t.Errorf("done() output missing message: %q", output)
	}
	// done() appends the elapsed time in seconds.
	if !strings.Contains(output, "s)") {
		t.Errorf("done() output missing duration suffix: %q", output)
	}
}

func TestLoggerContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, log.InfoLevel)

		ctx := withLogger(context.Background(), logger)
		retrieved := loggerFromContext(ctx)

		if retrieved != logger {
			t.Fatal("loggerFromContext should return the stored logger")
		}

		retrieved.Info("layout written")
		if buf.Len() == 0 {
			t.Error("stored logger should write to its buffer")
		}
	})

	t.Run("default when unset", func(t *testing.T) {
		if loggerFromContext(context.Background()) == nil {
			t.Error("loggerFromContext should fall back to the default logger")
		}
	})
}
