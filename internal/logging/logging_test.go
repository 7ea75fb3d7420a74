package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		json      bool
		debug     bool
		wantDebug bool
	}{
		{name: "console info", wantDebug: false},
		{name: "json debug", json: true, debug: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.json, tt.debug)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Fatalf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if !logger.Core().Enabled(zapcore.InfoLevel) {
				t.Fatal("info should always be enabled")
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithFields(logger, zap.String(FieldResumeID, "abc")).Info("stored")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldResumeID]; got != "abc" {
		t.Fatalf("expected resume_id abc, got %v", got)
	}

	if WithFields(logger) != logger {
		t.Fatal("expected the same logger when no fields are given")
	}

	fallback := WithFields(nil, zap.String("k", "v"))
	if fallback == nil {
		t.Fatal("expected fallback logger when nil provided")
	}
	fallback.Info("does not panic")
}

func TestSource(t *testing.T) {
	if got := Source("   "); len(got) != 0 {
		t.Fatalf("expected no fields for blank source, got %d", len(got))
	}
	got := Source(" resume.pdf ")
	if len(got) != 1 || got[0].Key != FieldSource || got[0].String != "resume.pdf" {
		t.Fatalf("unexpected source field: %+v", got)
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{in: "short", limit: 10, want: "short"},
		{in: "  padded  ", limit: 10, want: "padded"},
		{in: "résumé text", limit: 6, want: "résumé..."},
		{in: "anything", limit: 0, want: ""},
	}
	for _, tt := range tests {
		if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
			t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
