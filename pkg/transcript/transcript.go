// Package transcript provides the append-only session log. The
// transcript is the sole user-visible record of controller activity;
// entries are appended by the event router and never rewritten.
//
// The transcript is owned by the event loop goroutine and needs no
// locking.
package transcript

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Kind classifies a transcript entry so the surface can style it.
type Kind int

const (
	KindInfo Kind = iota
	KindError
	KindTX
	KindRX
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindError:
		return "error"
	case KindTX:
		return "tx"
	case KindRX:
		return "rx"
	default:
		return "unknown"
	}
}

// FileFormat represents the transcript export formats.
type FileFormat int

const (
	FormatPlainText FileFormat = iota
	FormatTimestamped
)

// Entry is a single immutable line in the transcript.
type Entry struct {
	Text string    `json:"text"`
	Kind Kind      `json:"kind"`
	Time time.Time `json:"time"`
}

// Log defines the contract the router and the surface share: the
// router appends, the surface reads.
type Log interface {
	Append(kind Kind, text string)
	Entries() []Entry
	Len() int
	Clear()
	SaveToFile(filename string, format FileFormat) error
}

// MemoryLog is the in-memory Log implementation. History is not
// persisted across runs; SaveToFile writes a user-requested snapshot
// that the monitor never reads back.
type MemoryLog struct {
	entries []Entry
}

// NewMemoryLog creates an empty transcript.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Append adds one entry at the end of the transcript.
func (l *MemoryLog) Append(kind Kind, text string) {
	l.entries = append(l.entries, Entry{
		Text: text,
		Kind: kind,
		Time: time.Now(),
	})
}

// Entries returns the transcript in append order. The returned slice
// shares storage with the log; callers must not modify it.
func (l *MemoryLog) Entries() []Entry {
	return l.entries
}

// Len returns the number of entries.
func (l *MemoryLog) Len() int {
	return len(l.entries)
}

// Clear discards all entries.
func (l *MemoryLog) Clear() {
	l.entries = nil
}

// SaveToFile writes the transcript to filename in the given format.
func (l *MemoryLog) SaveToFile(filename string, format FileFormat) error {
	var sb strings.Builder
	for _, e := range l.entries {
		switch format {
		case FormatTimestamped:
			fmt.Fprintf(&sb, "[%s] %s\n", e.Time.Format("15:04:05.000"), e.Text)
		default:
			fmt.Fprintf(&sb, "%s\n", e.Text)
		}
	}

	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}
