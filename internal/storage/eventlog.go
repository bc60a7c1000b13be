// Package storage persists the event journal.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dohr-michael/taskapi/internal/events"
)

// JournalFile is the name of the JSONL file written inside the log directory.
const JournalFile = "events.jsonl"

// EventLogger appends bus events to a JSONL journal. Tasks are never
// restored from it; it is an audit trail only.
type EventLogger struct {
	path        string
	mu          sync.Mutex
	unsubscribe func()
}

// NewEventLogger creates the log directory and subscribes to all bus events.
func NewEventLogger(dir string, bus *events.Bus) (*EventLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create event log dir: %w", err)
	}
	el := &EventLogger{path: filepath.Join(dir, JournalFile)}
	el.unsubscribe = bus.Subscribe(el.handleEvent)
	return el, nil
}

// Path returns the journal file path.
func (el *EventLogger) Path() string {
	return el.path
}

// Close unsubscribes the logger from the event bus.
func (el *EventLogger) Close() {
	if el.unsubscribe != nil {
		el.unsubscribe()
	}
}

func (el *EventLogger) handleEvent(e events.Event) {
	if err := el.writeEvent(e); err != nil {
		slog.Warn("event journal write failed", "event", e.Type, "error", err)
	}
}

func (el *EventLogger) writeEvent(e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	// Subscribers run concurrently; keep lines whole.
	el.mu.Lock()
	defer el.mu.Unlock()

	f, err := os.OpenFile(el.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}
