package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Sink is the interface for debug output destinations. Sessions running
// at the same time may share one Sink.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format. It may be shared by
// concurrent sessions.
type JSONSink struct {
	mu      sync.Mutex
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format. It may be shared by
// concurrent sessions; the lines of one event stay together.
type PrettySink struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	switch d := event.Data.(type) {
	case GenerateStartData:
		fmt.Fprintf(s.w, "  mode: %s, name: %q, workers: %d\n", d.Mode, d.Name, d.Workers)
		if d.Mode == "font" {
			fmt.Fprintf(s.w, "  code_page: %d, characters: %d\n", d.CodePage, d.Characters)
		}
	case CellData:
		fmt.Fprintf(s.w, "  cell: %dx%d\n", d.Width, d.Height)
	case BorderData:
		fmt.Fprintf(s.w, "  index: %d, rune: %s\n", d.Index, runeStr(d.Rune))
		if d.Blank {
			fmt.Fprintf(s.w, "  blank\n")
		} else {
			fmt.Fprintf(s.w, "  border: (%d,%d)-(%d,%d)\n", d.Left, d.Top, d.Right, d.Bottom)
		}
	case CommonBorderData:
		fmt.Fprintf(s.w, "  found: %t, border: (%d,%d)-(%d,%d)\n", d.Found, d.Left, d.Top, d.Right, d.Bottom)
	case CropData:
		fmt.Fprintf(s.w, "  index: %d, rune: %s\n", d.Index, runeStr(d.Rune))
		if d.Skipped != "" {
			fmt.Fprintf(s.w, "  skipped: %s\n", d.Skipped)
		} else {
			fmt.Fprintf(s.w, "  bitmap: %dx%d, bytes: %d\n", d.Width, d.Height, d.Bytes)
		}
	case BlocksData:
		fmt.Fprintf(s.w, "  threshold: %d, blocks: %v\n", d.Threshold, d.Blocks)
	case GenerateEndData:
		fmt.Fprintf(s.w, "  characters: %d, bitmap_bytes: %d, elapsed_ms: %d\n",
			d.Characters, d.BitmapBytes, d.ElapsedMs)
	case ErrorData:
		fmt.Fprintf(s.w, "  %s: %s\n", d.Type, d.Message)
	case map[string]any:
		for _, k := range sortedKeys(d) {
			fmt.Fprintf(s.w, "  %s: %v\n", k, d[k])
		}
	case map[string]int64:
		for _, k := range sortedKeys(d) {
			fmt.Fprintf(s.w, "  %s: %d\n", k, d[k])
		}
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// runeStr formats a rune for display: 'X' (0x58).
func runeStr(r rune) string {
	if r >= 32 && r != 127 {
		return fmt.Sprintf("'%c' (0x%02X)", r, r)
	}
	return fmt.Sprintf("0x%02X", r)
}
