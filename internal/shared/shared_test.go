package shared

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == b {
		t.Error("ids should be unique")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string of length 36, got %d (%q)", len(a), a)
	}
	if strings.Count(a, "-") != 4 {
		t.Errorf("expected 4 dashes in uuid, got %q", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"name": "Alone"}

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}
		if string(out) != `{"name":"Alone"}` {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}
		if !strings.Contains(string(out), "  \"name\": \"Alone\"") {
			t.Errorf("expected indented output, got %q", out)
		}
	})

	t.Run("unmarshalable input", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for channel value")
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than max", in: "hello", max: 10, want: "hello"},
		{name: "exactly max", in: "hello", max: 5, want: "hello"},
		{name: "truncated with ellipsis", in: "hello world", max: 8, want: "hello..."},
		{name: "tiny max skips ellipsis", in: "hello", max: 2, want: "he"},
		{name: "empty", in: "", max: 5, want: ""},
		{name: "multibyte runes", in: "明天你好明天你好", max: 6, want: "明天你..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("sorted playlist", "matched", 12)

	out := buf.String()
	if !strings.Contains(out, "sorted playlist") {
		t.Errorf("log output missing message: %q", out)
	}
	if !strings.Contains(out, "matched=12") {
		t.Errorf("log output missing key-value pair: %q", out)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "run_id", "abc123")

	logger.Info("start")

	if !strings.Contains(buf.String(), "run_id=abc123") {
		t.Errorf("child logger should carry fields: %q", buf.String())
	}
}
