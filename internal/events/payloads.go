package events

import (
	"encoding/json"
	"time"
)

// EventPayload is the interface all typed payloads implement.
type EventPayload interface {
	EventType() EventType
}

// TaskCreatedPayload is emitted after a task is appended to the store.
type TaskCreatedPayload struct {
	TaskID int    `json:"task_id"`
	Title  string `json:"title"`
}

func (TaskCreatedPayload) EventType() EventType { return EventTaskCreated }

// ServerStartedPayload is emitted once the listener is bound.
type ServerStartedPayload struct {
	Addr string `json:"addr"`
}

func (ServerStartedPayload) EventType() EventType { return EventServerStarted }

// ServerStoppedPayload is emitted when the server shuts down.
type ServerStoppedPayload struct {
	Reason string `json:"reason,omitempty"`
}

func (ServerStoppedPayload) EventType() EventType { return EventServerStopped }

// NewTypedEvent builds an Event whose type and payload come from a typed payload.
func NewTypedEvent(source EventSource, payload EventPayload) Event {
	return Event{
		ID:        generateEventID(),
		Type:      payload.EventType(),
		Timestamp: time.Now(),
		Source:    source,
		Payload:   toMap(payload),
	}
}

func toMap(v any) map[string]any {
	var result map[string]any
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return result
}

// ExtractPayload decodes an event's payload into T.
func ExtractPayload[T EventPayload](e Event) (T, bool) {
	var result T
	if e.Type != result.EventType() {
		return result, false
	}
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}

func GetTaskCreatedPayload(e Event) (TaskCreatedPayload, bool) {
	return ExtractPayload[TaskCreatedPayload](e)
}
