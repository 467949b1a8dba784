package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"auto-loan-contracts/internal/app"
	"auto-loan-contracts/internal/config"
	"auto-loan-contracts/internal/platform/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	l, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, l, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()
	return app.Serve(ctx, cfg, l, cmd.Bool("migrate"))
}

func migrate(_ context.Context, _ *cli.Command) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()
	return app.Migrate(cfg, l)
}

// flags keep parse state, so every command gets its own instance
func migrateFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "migrate",
		Usage:   "Apply schema migrations before serving",
		Sources: cli.EnvVars("AUTO_MIGRATE"),
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "contracts-api",
		Usage:  "Auto-loan contract lifecycle and promissory note service",
		Action: serve,
		Flags:  []cli.Flag{migrateFlag()},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
				Flags:  []cli.Flag{migrateFlag()},
			},
			{
				Name:   "migrate",
				Usage:  "Create or update the database schema and exit",
				Action: migrate,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Printf("application error: %v", err)
		os.Exit(1)
	}
}
