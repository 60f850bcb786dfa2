// Package narration carries the human-readable story of a simulation from the
// world to whoever is watching it. Lines travel over the in-process bus so any
// number of sinks can observe them in the exact order effects happen.
package narration

import (
	"fmt"
	"io"
	"sync"

	"github.com/zeusync/murker/internal/core/events/bus"
)

// EventType is the bus event type used for narration lines.
const EventType = "narration.line"

// Line extracts the narrated text from a bus event.
func Line(e bus.Event) (string, bool) {
	s, ok := e.Data().(string)
	return s, ok
}

// Writer returns a bus handler printing every narration line to w.
func Writer(w io.Writer) bus.EventHandler {
	return func(e bus.Event) error {
		line, ok := Line(e)
		if !ok {
			return fmt.Errorf("narration: unexpected payload %T", e.Data())
		}
		_, err := fmt.Fprintln(w, line)
		return err
	}
}

// Recorder keeps every narration line it receives.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Record subscribes a new Recorder to b.
func Record(b bus.EventBus) (*Recorder, error) {
	r := &Recorder{}
	if _, err := b.Subscribe(EventType, r.handle); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) handle(e bus.Event) error {
	line, ok := Line(e)
	if !ok {
		return fmt.Errorf("narration: unexpected payload %T", e.Data())
	}
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
	return nil
}

// Lines returns a copy of the recorded lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[len(r.lines)-1]
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.lines = nil
	r.mu.Unlock()
}
