package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/dohr-michael/taskapi/internal/config"
	"github.com/dohr-michael/taskapi/internal/gateway"
	"github.com/dohr-michael/taskapi/internal/tasks"
)

func newClient(t *testing.T) *Client {
	t.Helper()
	srv := gateway.NewServer(tasks.NewMemoryStore(), nil, config.Default().Server)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", ts.Client())
}

func TestClient_ListAndCreate(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	list, err := c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if want := []tasks.Task{{ID: 1, Title: "Buy groceries"}}; !reflect.DeepEqual(list, want) {
		t.Errorf("got %+v, want %+v", list, want)
	}

	created, err := c.CreateTask(ctx, "Learn testing")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if want := (tasks.Task{ID: 2, Title: "Learn testing"}); created != want {
		t.Errorf("got %+v, want %+v", created, want)
	}

	list, err = c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(list))
	}
}

func TestClient_CreateEmptyTitle(t *testing.T) {
	c := newClient(t)

	_, err := c.CreateTask(context.Background(), "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Title is required" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "Title is required") {
		t.Errorf("error text %q lacks server message", err.Error())
	}
}

func TestClient_NonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).ListTasks(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "" {
		t.Errorf("expected empty message, got %q", apiErr.Message)
	}
	if !strings.Contains(apiErr.Error(), "Bad Gateway") {
		t.Errorf("error text %q lacks status", apiErr.Error())
	}
}

func TestClient_CancelledContext(t *testing.T) {
	c := newClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListTasks(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
