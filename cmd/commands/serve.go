package commands

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/taskapi/internal/config"
	"github.com/dohr-michael/taskapi/internal/events"
	"github.com/dohr-michael/taskapi/internal/gateway"
	"github.com/dohr-michael/taskapi/internal/heartbeat"
	"github.com/dohr-michael/taskapi/internal/storage"
	"github.com/dohr-michael/taskapi/internal/tasks"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the task HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = cmd.Int("port")
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	defer svc.close()

	return svc.run(ctx)
}

// service holds the components of a running server. close drains the
// bus before the journal unsubscribes.
type service struct {
	cfg         *config.Config
	bus         *events.Bus
	unsubscribe func()
	journal     *storage.EventLogger
	server      *gateway.Server
	heartbeat   *heartbeat.Writer
}

// newService wires the bus, journal and server, and binds the listen address.
func newService(cfg *config.Config) (*service, error) {
	s := &service{cfg: cfg}

	// Event bus
	s.bus = events.NewBus(cfg.Events.BufferSize)
	s.unsubscribe = s.bus.Subscribe(func(e events.Event) {
		if p, ok := events.GetTaskCreatedPayload(e); ok {
			slog.Debug("task created", "id", p.TaskID, "title", p.Title)
		}
	}, events.EventTaskCreated)

	if cfg.Events.LogDir != "" {
		journal, err := storage.NewEventLogger(cfg.Events.LogDir, s.bus)
		if err != nil {
			s.close()
			return nil, err
		}
		s.journal = journal
		slog.Info("event journal enabled", "path", journal.Path())
	}

	s.server = gateway.NewServer(tasks.NewMemoryStore(), s.bus, cfg.Server)
	if err := s.server.Listen(); err != nil {
		s.close()
		return nil, err
	}

	// Listen has run, so Addr reports the bound port.
	s.heartbeat = heartbeat.NewWriter(config.HeartbeatPath(), heartbeat.DefaultInterval, s.server.Addr)
	return s, nil
}

// run serves until ctx is done or the server fails.
func (s *service) run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve()
	}()
	s.heartbeat.Start()
	defer s.heartbeat.Stop()

	// Wait for signal or error
	select {
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *service) close() {
	s.bus.Close()
	if s.journal != nil {
		s.journal.Close()
	}
	s.unsubscribe()
}
