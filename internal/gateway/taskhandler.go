package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/dohr-michael/taskapi/internal/events"
	"github.com/dohr-michael/taskapi/internal/tasks"
)

// TaskHandler serves the task list and create operations over a tasks.Store.
type TaskHandler struct {
	store        tasks.Store
	bus          *events.Bus
	maxBodyBytes int64
}

// NewTaskHandler creates a task handler. maxBodyBytes <= 0 disables the body limit.
func NewTaskHandler(store tasks.Store, bus *events.Bus, maxBodyBytes int64) *TaskHandler {
	return &TaskHandler{store: store, bus: bus, maxBodyBytes: maxBodyBytes}
}

type createTaskRequest struct {
	Title string `json:"title"`
}

// List responds with every task, in insertion order.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalFailure)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create appends a task from a {"title": "..."} body and responds with it.
// Bodies not sent as application/json are not read and count as {}.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data []byte
	if isJSONRequest(r) {
		body := r.Body
		if h.maxBodyBytes > 0 {
			body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
		}
		var err error
		data, err = io.ReadAll(body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
				return
			}
			writeError(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
	}

	title, err := decodeTitle(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if title == "" {
		writeError(w, http.StatusBadRequest, msgTitleRequired)
		return
	}

	t, err := h.store.Create(r.Context(), title)
	if err != nil {
		slog.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalFailure)
		return
	}

	if h.bus != nil {
		h.bus.Publish(events.NewTypedEvent(events.SourceHTTP, events.TaskCreatedPayload{
			TaskID: t.ID,
			Title:  t.Title,
		}))
	}

	writeJSON(w, http.StatusCreated, t)
}

// isJSONRequest reports whether the request declares an application/json body.
// Parameters such as charset are ignored.
func isJSONRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}

// decodeTitle extracts the title from a request body. An empty body counts as {}.
// Syntactically valid JSON whose title is absent, null, or not a string yields "".
func decodeTitle(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", nil
	}
	if !json.Valid(data) {
		return "", errors.New("invalid json")
	}

	var req createTaskRequest
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(data, &req); err != nil && !errors.As(err, &typeErr) {
		return "", err
	}
	return req.Title, nil
}
