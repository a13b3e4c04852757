package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credvault/cmd/app/commands"
	"github.com/allisson/credvault/internal/app"
	"github.com/allisson/credvault/internal/config"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
)

func getCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
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
			Name:  "generate-key",
			Usage: "Generate a new base64-encoded 256-bit encryption key",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				encryptor := cryptoService.NewAESGCM(cryptoService.NewEnvKeyResolver())
				return commands.RunGenerateKey(encryptor, commands.DefaultIO().Writer)
			},
		},
	}
}
