package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dohr-michael/taskapi/internal/events"
)

func readJournal(t *testing.T, path string) []events.Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer f.Close()

	var out []events.Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e events.Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		out = append(out, e)
	}
	return out
}

// waitForLines polls until the journal holds n lines or a second elapses.
func waitForLines(path string, n int) {
	for i := 0; i < 200; i++ {
		data, err := os.ReadFile(path)
		if err == nil && countLines(data) >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}

func TestEventLogger_WriteAndReadBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	bus := events.NewBus(64)
	defer bus.Close()

	el, err := NewEventLogger(dir, bus)
	if err != nil {
		t.Fatal(err)
	}
	defer el.Close()

	bus.Publish(events.NewTypedEvent(events.SourceHTTP, events.TaskCreatedPayload{TaskID: 2, Title: "Learn testing"}))

	waitForLines(el.Path(), 1)

	got := readJournal(t, el.Path())
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Type != events.EventTaskCreated {
		t.Errorf("got type %q, want %q", got[0].Type, events.EventTaskCreated)
	}
	p, ok := events.GetTaskCreatedPayload(got[0])
	if !ok || p.TaskID != 2 || p.Title != "Learn testing" {
		t.Errorf("unexpected payload %+v", p)
	}
}

func TestEventLogger_ManyEvents(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewBus(128)
	defer bus.Close()

	el, err := NewEventLogger(dir, bus)
	if err != nil {
		t.Fatal(err)
	}
	defer el.Close()

	for i := 0; i < 20; i++ {
		bus.Publish(events.NewTypedEvent(events.SourceHTTP, events.TaskCreatedPayload{TaskID: i + 2, Title: "t"}))
	}

	waitForLines(el.Path(), 20)

	if got := readJournal(t, el.Path()); len(got) != 20 {
		t.Fatalf("expected 20 events, got %d", len(got))
	}
}

func TestEventLogger_CloseStopsWriting(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewBus(64)
	defer bus.Close()

	el, err := NewEventLogger(dir, bus)
	if err != nil {
		t.Fatal(err)
	}
	el.Close()

	bus.Publish(events.NewEvent(events.EventServerStarted, events.SourceServer, nil))
	time.Sleep(50 * time.Millisecond)

	if _, err := os.Stat(filepath.Join(dir, JournalFile)); !os.IsNotExist(err) {
		t.Errorf("expected no journal after Close, stat err = %v", err)
	}
}
