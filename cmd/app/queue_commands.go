package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/deliveryqueue/cmd/app/commands"
	"github.com/allisson/deliveryqueue/internal/app"
	"github.com/allisson/deliveryqueue/internal/config"
)

func getQueueCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-product",
			Usage: "Add a product to the catalog",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Unique product name",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				productUseCase, err := container.ProductUseCase()
				if err != nil {
					return fmt.Errorf("failed to initialize product use case: %w", err)
				}

				return commands.RunCreateProduct(
					ctx,
					productUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "promote-pending",
			Usage: "Move the oldest pending delivery into an empty Em Rota slot",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				deliveryUseCase, err := container.DeliveryUseCase()
				if err != nil {
					return fmt.Errorf("failed to initialize delivery use case: %w", err)
				}

				return commands.RunPromotePending(
					ctx,
					deliveryUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
