package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInfo, "info"},
		{KindError, "error"},
		{KindTX, "tx"},
		{KindRX, "rx"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestMemoryLogAppend(t *testing.T) {
	log := NewMemoryLog()

	if log.Len() != 0 {
		t.Fatalf("new log has %d entries, want 0", log.Len())
	}

	log.Append(KindInfo, "Successfully opened port '/dev/ttyUSB0'")
	log.Append(KindTX, "Sent 3 bytes: abc")
	log.Append(KindError, "Port not open")

	if log.Len() != 3 {
		t.Fatalf("log has %d entries, want 3", log.Len())
	}

	entries := log.Entries()
	if entries[0].Kind != KindInfo || entries[0].Text != "Successfully opened port '/dev/ttyUSB0'" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Kind != KindTX {
		t.Errorf("entry 1 kind = %v, want KindTX", entries[1].Kind)
	}
	if entries[2].Kind != KindError {
		t.Errorf("entry 2 kind = %v, want KindError", entries[2].Kind)
	}
	if entries[0].Time.IsZero() {
		t.Error("entry 0 has zero timestamp")
	}
}

func TestMemoryLogClear(t *testing.T) {
	log := NewMemoryLog()
	log.Append(KindInfo, "one")
	log.Append(KindInfo, "two")

	log.Clear()

	if log.Len() != 0 {
		t.Errorf("cleared log has %d entries, want 0", log.Len())
	}
}

func TestSaveToFilePlainText(t *testing.T) {
	log := NewMemoryLog()
	log.Append(KindInfo, "Port closed")
	log.Append(KindRX, "Received 2 bytes: 48 69")

	path := filepath.Join(t.TempDir(), "session.log")
	if err := log.SaveToFile(path, FormatPlainText); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	want := "Port closed\nReceived 2 bytes: 48 69\n"
	if string(data) != want {
		t.Errorf("saved content = %q, want %q", data, want)
	}
}

func TestSaveToFileTimestamped(t *testing.T) {
	log := NewMemoryLog()
	log.Append(KindInfo, "Listener started")

	path := filepath.Join(t.TempDir(), "session.log")
	if err := log.SaveToFile(path, FormatTimestamped); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	line := strings.TrimSuffix(string(data), "\n")
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "] Listener started") {
		t.Errorf("timestamped line = %q, want [HH:MM:SS.mmm] prefix", line)
	}
}

func TestSaveToFileBadPath(t *testing.T) {
	log := NewMemoryLog()
	log.Append(KindInfo, "entry")

	err := log.SaveToFile(filepath.Join(t.TempDir(), "missing", "session.log"), FormatPlainText)
	if err == nil {
		t.Fatal("SaveToFile to missing directory succeeded, want error")
	}
}
