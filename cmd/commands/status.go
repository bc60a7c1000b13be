package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/taskapi/internal/config"
	"github.com/dohr-michael/taskapi/internal/heartbeat"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show whether a taskapi server is running",
		Action: func(_ context.Context, cmd *cli.Command) error {
			status, hb, err := heartbeat.Check(config.HeartbeatPath(), 4*heartbeat.DefaultInterval)
			if err != nil {
				return fmt.Errorf("check heartbeat: %w", err)
			}

			w := cmd.Root().Writer
			switch status {
			case heartbeat.StatusAlive:
				fmt.Fprintf(w, "Server: ALIVE (PID %d, addr %s, uptime %s)\n", hb.PID, hb.Addr, hb.Uptime)
			case heartbeat.StatusStale:
				fmt.Fprintf(w, "Server: STALE (PID %d, last heartbeat %s ago)\n",
					hb.PID, time.Since(hb.Timestamp).Truncate(time.Second))
			case heartbeat.StatusDead:
				fmt.Fprintln(w, "Server: NOT RUNNING")
			}

			return nil
		},
	}
}
