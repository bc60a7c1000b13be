package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTaskAPIPath_Default(t *testing.T) {
	t.Setenv("TASKAPI_PATH", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	got := TaskAPIPath()
	want := filepath.Join(home, ".taskapi")
	if got != want {
		t.Errorf("TaskAPIPath() = %q, want %q", got, want)
	}
}

func TestTaskAPIPath_EnvOverride(t *testing.T) {
	t.Setenv("TASKAPI_PATH", "/tmp/custom-taskapi")

	if got := TaskAPIPath(); got != "/tmp/custom-taskapi" {
		t.Errorf("TaskAPIPath() = %q, want %q", got, "/tmp/custom-taskapi")
	}
}

func TestDerivedPaths(t *testing.T) {
	t.Setenv("TASKAPI_PATH", "/tmp/test-taskapi")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", ConfigPath(), "/tmp/test-taskapi/config.jsonc"},
		{"dotenv", DotenvPath(), "/tmp/test-taskapi/.env"},
		{"heartbeat", HeartbeatPath(), "/tmp/test-taskapi/heartbeat.json"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
