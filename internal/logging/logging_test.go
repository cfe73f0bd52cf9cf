package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"ERROR", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"verbose", log.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Error("json should map to JSONFormatter")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("logfmt should map to LogfmtFormatter")
	}
	if ParseFormatter("anything") != log.TextFormatter {
		t.Error("unknown format should map to TextFormatter")
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("debug") || ValidLevel("loud") {
		t.Error("ValidLevel mismatch")
	}
	if !ValidFormat("logfmt") || ValidFormat("xml") {
		t.Error("ValidFormat mismatch")
	}
}

func TestNewFromConfigFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "warn", "text", false, false)

	logger.Info("hidden message")
	logger.Warn("visible message", "task_id", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible message") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "task_id=abc") {
		t.Errorf("structured field missing: %q", out)
	}
	if !strings.Contains(out, DefaultPrefix) {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestNewFromConfigJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFromConfig(&buf, "debug", "json", false, false)
	logger.Debug("store fallback", "path", "/tmp/TODO.json")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "store fallback" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["path"] != "/tmp/TODO.json" {
		t.Errorf("path: got %v", entry["path"])
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	// Must not panic or write anywhere.
	logger.Error("ignored")
}
