package commands

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/taskapi/clients/httpclient"
	"github.com/dohr-michael/taskapi/internal/config"
	"github.com/dohr-michael/taskapi/internal/output"
)

// NewTasksCommand returns the tasks subcommand.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "List or create tasks on a running server",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all tasks",
				Flags:  clientFlags(),
				Action: runTasksList,
			},
			{
				Name:      "add",
				Usage:     "Create a task",
				ArgsUsage: "<title>",
				Flags:     clientFlags(),
				Action:    runTasksAdd,
			},
		},
		DefaultCommand: "list",
	}
}

func clientFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "Server base URL (default: derived from config)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json or yaml (default: table on a terminal, json otherwise)",
		},
	}
}

func runTasksList(ctx context.Context, cmd *cli.Command) error {
	client, format, err := taskClient(cmd)
	if err != nil {
		return err
	}

	list, err := client.ListTasks(ctx)
	if err != nil {
		return err
	}
	return output.WriteTasks(cmd.Root().Writer, format, list)
}

func runTasksAdd(ctx context.Context, cmd *cli.Command) error {
	title := strings.Join(cmd.Args().Slice(), " ")
	if title == "" {
		return fmt.Errorf("usage: taskapi tasks add <title>")
	}

	client, format, err := taskClient(cmd)
	if err != nil {
		return err
	}

	t, err := client.CreateTask(ctx, title)
	if err != nil {
		return err
	}
	return output.WriteTask(cmd.Root().Writer, format, t)
}

func taskClient(cmd *cli.Command) (*httpclient.Client, output.Format, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	format, err := resolveFormat(cmd.String("output"), cmd.Root().Writer)
	if err != nil {
		return nil, "", err
	}

	baseURL := cmd.String("url")
	if baseURL == "" {
		baseURL = serverURL(cfg.Server)
	}
	return httpclient.New(baseURL, nil), format, nil
}

// resolveFormat picks table for terminals and json for pipes when no format is given.
func resolveFormat(flag string, w io.Writer) (output.Format, error) {
	if flag != "" {
		return output.ParseFormat(flag)
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return output.FormatTable, nil
	}
	return output.FormatJSON, nil
}

// serverURL builds a client URL from the listen address, mapping wildcard hosts to loopback.
func serverURL(cfg config.ServerConfig) string {
	host := cfg.Host
	switch host {
	case "", "0.0.0.0", "::", "[::]":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Port))
}
