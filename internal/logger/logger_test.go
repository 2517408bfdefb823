package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		jsonOutput  bool
		wantDebug   bool
		wantJSON    bool
	}{
		{"production text", "production", false, false, false},
		{"production json", "production", true, false, true},
		{"development text", "development", false, true, false},
		{"development json", "development", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.environment, tt.jsonOutput)

			log.Debug("debug line")
			if got := buf.Len() > 0; got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}

			buf.Reset()
			log.Info("info line", "key", "value")
			out := buf.String()
			if tt.wantJSON {
				var entry map[string]any
				if err := json.Unmarshal([]byte(out), &entry); err != nil {
					t.Fatalf("output is not JSON: %v\n%s", err, out)
				}
				if entry["msg"] != "info line" || entry["key"] != "value" {
					t.Errorf("entry = %v", entry)
				}
				return
			}
			if !strings.Contains(out, "msg=\"info line\"") || !strings.Contains(out, "key=value") {
				t.Errorf("text output = %q", out)
			}
		})
	}
}

func TestJSONPreferred(t *testing.T) {
	tests := []struct {
		environment string
		logJSON     string
		want        bool
	}{
		{"production", "", true},
		{"development", "", false},
		{"development", "true", true},
		{"production", "false", false},
		{"staging", "yes", false},
	}

	for _, tt := range tests {
		if got := JSONPreferred(tt.environment, tt.logJSON); got != tt.want {
			t.Errorf("JSONPreferred(%q, %q) = %v, want %v", tt.environment, tt.logJSON, got, tt.want)
		}
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log == nil {
		t.Fatal("Discard() returned nil")
	}
	log.Info("dropped")
}
