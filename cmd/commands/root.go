package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/taskapi/internal/config"
	"github.com/dohr-michael/taskapi/internal/logging"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "taskapi",
		Usage: "In-memory task list over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewServeCommand(),
			NewTasksCommand(),
			NewStatusCommand(),
		},
	}
}

// loadConfig reads the --config file, falling back to defaults when it is
// missing, and installs the slog handler it describes.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	missing := errors.Is(err, config.ErrNoConfig)
	if err != nil && !missing {
		return nil, err
	}
	if missing {
		cfg = config.Default()
	}

	if err := logging.Setup(os.Stderr, cfg.Log, cmd.Bool("debug")); err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	if missing {
		slog.Debug("config not found, using defaults", "path", configPath)
	}
	return cfg, nil
}
