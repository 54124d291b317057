package narration

import (
	"fmt"
	"io"
	"sync"

	"github.com/louisbranch/creaturebattle/internal/battle"
)

var (
	_ battle.MessageSink = (*Writer)(nil)
	_ battle.MessageSink = (*Recorder)(nil)
	_ battle.MessageSink = Fanout(nil)
)

// Writer writes each narrated line to an io.Writer. Battles running
// concurrently may share one Writer; lines never interleave.
type Writer struct {
	mu       sync.Mutex
	out      io.Writer
	battleID bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithBattleID prefixes each line with the battle id.
func WithBattleID() WriterOption {
	return func(w *Writer) { w.battleID = true }
}

// NewWriter returns a sink writing to out.
func NewWriter(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{out: out}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Message writes text as one line. Write errors are dropped: narration is
// best effort.
func (w *Writer) Message(battleID, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.battleID {
		_, _ = fmt.Fprintf(w.out, "[%s] %s\n", battleID, text)
		return
	}
	_, _ = fmt.Fprintln(w.out, text)
}

// Recorder keeps narrated lines in memory per battle.
type Recorder struct {
	mu    sync.Mutex
	lines map[string][]string
	order []string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{lines: map[string][]string{}}
}

// Message records text under battleID.
func (r *Recorder) Message(battleID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[battleID]; !ok {
		r.order = append(r.order, battleID)
	}
	r.lines[battleID] = append(r.lines[battleID], text)
}

// Lines returns a copy of the lines recorded for battleID.
func (r *Recorder) Lines(battleID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines[battleID]))
	copy(out, r.lines[battleID])
	return out
}

// Battles returns battle ids in the order they first narrated.
func (r *Recorder) Battles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Reset drops every recorded line.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = map[string][]string{}
	r.order = nil
}

// Fanout delivers each line to every sink in order. Nil sinks are skipped.
type Fanout []battle.MessageSink

// Message forwards text to each sink.
func (f Fanout) Message(battleID, text string) {
	for _, sink := range f {
		if sink != nil {
			sink.Message(battleID, text)
		}
	}
}
