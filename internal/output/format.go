// Package output renders tasks for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/dohr-michael/taskapi/internal/tasks"
)

// Format selects how tasks are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// WriteTasks renders a task list.
func WriteTasks(w io.Writer, format Format, list []tasks.Task) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, list)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(list)
	default:
		if len(list) == 0 {
			_, err := fmt.Fprintln(w, "No tasks found.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE")
		for _, t := range list {
			fmt.Fprintf(tw, "%d\t%s\n", t.ID, normalizeTitle(t.Title))
		}
		return tw.Flush()
	}
}

// WriteTask renders a single task.
func WriteTask(w io.Writer, format Format, t tasks.Task) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, t)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(t)
	default:
		_, err := fmt.Fprintf(w, "Created task %d: %s\n", t.ID, normalizeTitle(t.Title))
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// normalizeTitle keeps table rows on one line.
// Blank titles render as "(untitled)".
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	title = strings.ReplaceAll(title, "\t", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
