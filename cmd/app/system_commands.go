package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/deliveryqueue/cmd/app/commands"
	"github.com/allisson/deliveryqueue/internal/app"
	"github.com/allisson/deliveryqueue/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server, the metrics server and the outbox worker",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "outbox-worker",
			Usage: "Drain queue events from the outbox until interrupted",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(context.Background()) }()

				outboxUseCase, err := container.OutboxUseCase()
				if err != nil {
					return fmt.Errorf("failed to initialize outbox use case: %w", err)
				}

				return commands.RunOutboxWorker(ctx, outboxUseCase, container.Logger())
			},
		},
	}
}
