package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runSync(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithForce(!cmd.Bool("diff")),
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("sync error: %w", err)
	}
	return nil
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithWatch(true),
	}
	if path := cmd.String("path"); path != "" {
		opts = append(opts, internal.WithSourcePath(path))
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "ansuz",
		Usage: "Keep a vault of research notes synchronized with a BibTeX bibliography",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Run one synchronization pass (full by default)",
				Action: runSync,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "diff",
						Usage: "Process only entries changed since the last pass",
					},
				},
			},
			{
				Name:   "watch",
				Usage:  "Run a full pass, then re-synchronize on bibliography changes",
				Action: runWatch,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Override the configured bibliography path",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
