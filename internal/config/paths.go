package config

import (
	"os"
	"path/filepath"
)

// TaskAPIPath returns the root directory for taskapi data.
// It uses $TASKAPI_PATH if set, otherwise defaults to ~/.taskapi.
func TaskAPIPath() string {
	if v := os.Getenv("TASKAPI_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".taskapi")
	}
	return filepath.Join(home, ".taskapi")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(TaskAPIPath(), "config.jsonc")
}

// DotenvPath returns the path to the .env file.
func DotenvPath() string {
	return filepath.Join(TaskAPIPath(), ".env")
}

// HeartbeatPath returns the path of the server heartbeat file.
func HeartbeatPath() string {
	return filepath.Join(TaskAPIPath(), "heartbeat.json")
}
