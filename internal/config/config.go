package config

import (
	"encoding/json"
	"time"
)

// Config is the root configuration for taskapi.
type Config struct {
	Server ServerConfig `json:"server"`
	Events EventsConfig `json:"events"`
	Log    LogConfig    `json:"log"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host              string   `json:"host"`
	Port              int      `json:"port"`
	MaxBodyBytes      int64    `json:"max_body_bytes"`
	ShutdownTimeout   Duration `json:"shutdown_timeout"`
	ReadHeaderTimeout Duration `json:"read_header_timeout"`
}

// EventsConfig holds event bus settings.
type EventsConfig struct {
	BufferSize int    `json:"buffer_size"`
	LogDir     string `json:"log_dir,omitempty"` // JSONL journal directory; empty disables it
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text, json
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalJSON accepts either a Go duration string ("5s") or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*d = Duration(n)
		return nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
