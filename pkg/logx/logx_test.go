package logx_test

import (
	"testing"

	"github.com/Abraxas-365/applymint/pkg/logx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want logx.Level
		ok   bool
	}{
		{"debug", logx.LevelDebug, true},
		{"INFO", logx.LevelInfo, true},
		{"", logx.LevelInfo, true},
		{"warning", logx.LevelWarn, true},
		{"error", logx.LevelError, true},
		{"verbose", logx.LevelInfo, false},
	}
	for _, c := range cases {
		got, ok := logx.ParseLevel(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFormattedHelpersReachBackingLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logx.SetLogger(zap.New(core))
	t.Cleanup(func() { logx.SetLogger(zap.NewNop()) })

	logx.Infof("job %s viewed", "j1")
	logx.Warn("cache miss", zap.String("key", "similar:job:j1:3"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Message != "job j1 viewed" {
		t.Errorf("message = %q, want %q", entries[0].Message, "job j1 viewed")
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entries[1].Level)
	}
	if entries[1].ContextMap()["key"] != "similar:job:j1:3" {
		t.Errorf("key field = %v", entries[1].ContextMap()["key"])
	}
}
